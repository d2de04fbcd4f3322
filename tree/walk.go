package tree

import (
	"iter"
	"slices"
)

// All yields root and everything below it, depth first. A container is
// yielded before its sub projects, then its folders, then its files.
func All(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(root, yield)
	}
}

func walk(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}

	var f *FolderNode
	switch c := n.(type) {
	case *SessionNode:
		for _, p := range c.projects {
			if !walk(p, yield) {
				return false
			}
		}
		f = &c.FolderNode
	case *ProjectNode:
		for _, p := range c.projects {
			if !walk(p, yield) {
				return false
			}
		}
		f = &c.FolderNode
	case *FolderNode:
		f = c
	default:
		return true
	}

	for _, sub := range f.folders {
		if !walk(sub, yield) {
			return false
		}
	}
	for _, file := range f.files {
		if !yield(file) {
			return false
		}
	}

	return true
}

// FilePaths returns the paths of every file below root in sorted order.
func FilePaths(root Node) []string {
	var paths []string
	for n := range All(root) {
		if n.NodeType() == FileNodeType {
			paths = append(paths, n.Path())
		}
	}

	slices.Sort(paths)
	return paths
}
