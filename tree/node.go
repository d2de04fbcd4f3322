package tree

import (
	"path"
	"slices"
)

// Node is an entry in the project tree. Paths are slash separated.
type Node interface {
	NodeType() NodeType
	Path() string
	Line() int
	Priority() int
	DisplayName() string

	// ParentFolder is the folder, project or session holding the node.
	ParentFolder() *FolderNode
	// ParentProject is the closest project above the node.
	ParentProject() *ProjectNode
	// ManagingProject is the project responsible for the node. It is the
	// node itself for a top level project and nil for the session.
	ManagingProject() *ProjectNode

	base() *node
}

// container is implemented by the nodes that hold children.
type container interface {
	Node
	folder() *FolderNode
}

type node struct {
	nodeType NodeType
	path     string
	line     int
	priority int
	parent   container
}

func (n *node) base() *node         { return n }
func (n *node) NodeType() NodeType  { return n.nodeType }
func (n *node) Path() string        { return n.path }
func (n *node) Line() int           { return n.line }
func (n *node) Priority() int       { return n.priority }
func (n *node) DisplayName() string { return path.Base(n.path) }

func (n *node) ParentFolder() *FolderNode {
	if n.parent == nil {
		return nil
	}

	return n.parent.folder()
}

func (n *node) ParentProject() *ProjectNode {
	for c := n.parent; c != nil; c = c.base().parent {
		if p, ok := c.(*ProjectNode); ok {
			return p
		}
	}

	return nil
}

// SortByPath is the order children are kept in.
func SortByPath(a, b Node) bool {
	return a.Path() < b.Path()
}

func byPath[N Node](a, b N) bool {
	return a.Path() < b.Path()
}

func comparePath[N Node](a, b N) int {
	switch {
	case a.Path() < b.Path():
		return -1
	case a.Path() > b.Path():
		return 1
	default:
		return 0
	}
}

// sortedByPath returns a sorted copy of nodes with later duplicates of a
// path dropped.
func sortedByPath[N Node](nodes []N) []N {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, comparePath[N])
	return slices.CompactFunc(sorted, func(a, b N) bool {
		return a.Path() == b.Path()
	})
}

// mergeByPath merges two path sorted lists. On equal paths the element of
// existing is kept.
func mergeByPath[N Node](existing, added []N) []N {
	merged := make([]N, 0, len(existing)+len(added))
	i, j := 0, 0
	for i < len(existing) && j < len(added) {
		switch {
		case byPath(existing[i], added[j]):
			merged = append(merged, existing[i])
			i++
		case byPath(added[j], existing[i]):
			merged = append(merged, added[j])
			j++
		default:
			merged = append(merged, existing[i])
			i++
			j++
		}
	}

	merged = append(merged, existing[i:]...)
	return append(merged, added[j:]...)
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name
}

// FileNode is a leaf of the tree.
type FileNode struct {
	node
	fileType  FileType
	generated bool
}

func NewFileNode(filePath string, fileType FileType, generated bool) *FileNode {
	return &FileNode{
		node: node{
			nodeType: FileNodeType,
			path:     filePath,
			line:     -1,
			priority: DefaultFilePriority,
		},
		fileType:  fileType,
		generated: generated,
	}
}

func (f *FileNode) FileType() FileType { return f.fileType }
func (f *FileNode) IsGenerated() bool  { return f.generated }

// SetLine points the node at a line within its file.
func (f *FileNode) SetLine(line int) {
	f.line = line
}

func (f *FileNode) ManagingProject() *ProjectNode {
	return managingProject(f)
}

func managingProject(n Node) *ProjectNode {
	parent := n.base().parent
	if parent == nil {
		return nil
	}

	if _, ok := parent.(*SessionNode); ok {
		p, _ := n.(*ProjectNode)
		return p
	}

	return n.ParentProject()
}
