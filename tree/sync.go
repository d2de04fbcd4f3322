package tree

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kyuff/treesync/sortedlist"
)

var ErrOutsideFolder = errors.New("path is outside of folder")

// Sync reconciles the folder subtree with a complete listing of the files
// below it. paths must be strictly sorted and below the folder path. Files
// missing from paths are removed, new ones are added, and the folders
// holding them are created or dropped to match. Sub projects are left
// alone.
//
// The returned paths are sorted.
func (f *FolderNode) Sync(paths []string) (removed, added []string, err error) {
	if err = sortedlist.CheckSorted(paths, cmp.Less[string]); err != nil {
		return nil, nil, fmt.Errorf("sync %q: %w", f.path, err)
	}

	removed, added, err = f.sync(paths)
	if err != nil {
		return nil, nil, fmt.Errorf("sync %q: %w", f.path, err)
	}

	slices.Sort(removed)
	slices.Sort(added)
	return removed, added, nil
}

func (f *FolderNode) sync(paths []string) (removed, added []string, err error) {
	var (
		files   []*FileNode
		dirs    []string
		grouped = make(map[string][]string)
	)

	for _, p := range paths {
		rel, ok := relative(f.path, p)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrOutsideFolder, p)
		}

		name, rest, nested := strings.Cut(rel, "/")
		if !nested {
			files = append(files, NewFileNode(p, FileTypeForPath(p), false))
			continue
		}
		if rest == "" {
			continue
		}

		dir := childPath(f.path, name)
		if _, seen := grouped[dir]; !seen {
			dirs = append(dirs, dir)
		}
		grouped[dir] = append(grouped[dir], p)
	}

	// "a-b/x" sorts before "a/x", so first appearance is not path order.
	slices.Sort(dirs)

	goneFiles, newFiles := f.SetFileNodes(files...)
	for _, n := range goneFiles {
		removed = append(removed, n.Path())
	}
	for _, n := range newFiles {
		added = append(added, n.Path())
	}

	current := make([]*FolderNode, 0, len(dirs))
	for _, dir := range dirs {
		current = append(current, NewFolderNode(dir))
	}

	goneFolders, newFolders := sortedlist.Compare(f.folders, current, byPath[*FolderNode])
	for _, gone := range goneFolders {
		removed = append(removed, FilePaths(gone)...)
	}
	f.RemoveFolderNodes(goneFolders...)
	f.AddFolderNodes(newFolders...)

	for _, dir := range dirs {
		r, a, err := f.FindFolder(dir).sync(grouped[dir])
		if err != nil {
			return nil, nil, err
		}

		removed = append(removed, r...)
		added = append(added, a...)
	}

	return removed, added, nil
}

func relative(base, p string) (string, bool) {
	if base == "" {
		return p, !strings.HasPrefix(p, "/")
	}

	return strings.CutPrefix(p, base+"/")
}

// BuildProject creates a project node holding the files in paths.
func BuildProject(projectPath string, paths []string, opts ...FolderOption) (*ProjectNode, error) {
	p := NewProjectNode(projectPath, opts...)
	if _, _, err := p.Sync(paths); err != nil {
		return nil, err
	}

	return p, nil
}
