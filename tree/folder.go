package tree

import (
	"context"
	"log/slog"
	"slices"

	"github.com/kyuff/treesync/internal/logger"
	"github.com/kyuff/treesync/sortedlist"
)

// FolderNode holds files and sub folders, each kept sorted by path.
// A FolderNode is not safe for concurrent use.
type FolderNode struct {
	node
	displayName string
	logger      Logger
	files       []*FileNode
	folders     []*FolderNode

	// self is the outermost node embedding this folder. Children point to
	// it so a project stays a project when seen from below.
	self container
}

type FolderOption func(f *FolderNode)

// WithDisplayName overrides the name derived from the path.
func WithDisplayName(name string) FolderOption {
	return func(f *FolderNode) {
		f.displayName = name
	}
}

// WithPriority overrides the default priority of the node type.
func WithPriority(priority int) FolderOption {
	return func(f *FolderNode) {
		f.priority = priority
	}
}

// WithLogger receives warnings about inconsistent removals in the subtree.
// Folders without a logger use the one of their parent.
func WithLogger(logger Logger) FolderOption {
	return func(f *FolderNode) {
		f.logger = logger
	}
}

func NewFolderNode(folderPath string, opts ...FolderOption) *FolderNode {
	f := &FolderNode{}
	f.init(FolderNodeType, folderPath, DefaultFolderPriority, f, opts...)
	return f
}

// NewVirtualFolderNode is a folder that groups nodes without a matching
// directory on disk.
func NewVirtualFolderNode(folderPath string, priority int, opts ...FolderOption) *FolderNode {
	f := &FolderNode{}
	f.init(VirtualFolderNodeType, folderPath, priority, f, opts...)
	return f
}

func (f *FolderNode) init(nodeType NodeType, folderPath string, priority int, self container, opts ...FolderOption) {
	f.node = node{
		nodeType: nodeType,
		path:     folderPath,
		line:     -1,
		priority: priority,
	}
	f.self = self
	for _, opt := range opts {
		opt(f)
	}
}

func (f *FolderNode) folder() *FolderNode {
	return f
}

func (f *FolderNode) DisplayName() string {
	if f.displayName != "" {
		return f.displayName
	}

	return f.node.DisplayName()
}

func (f *FolderNode) ManagingProject() *ProjectNode {
	return managingProject(f.self)
}

// Files returns the file children sorted by path.
func (f *FolderNode) Files() []*FileNode {
	return slices.Clone(f.files)
}

// Folders returns the folder children sorted by path.
func (f *FolderNode) Folders() []*FolderNode {
	return slices.Clone(f.folders)
}

func (f *FolderNode) FindFile(filePath string) *FileNode {
	return find(f.files, filePath)
}

func (f *FolderNode) FindFolder(folderPath string) *FolderNode {
	return find(f.folders, folderPath)
}

func find[N Node](nodes []N, p string) N {
	var zero N
	i, found := slices.BinarySearchFunc(nodes, p, func(n N, target string) int {
		switch {
		case n.Path() < target:
			return -1
		case n.Path() > target:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return zero
	}

	return nodes[i]
}

// AddFileNodes adds files as children. A file with the path of an existing
// child is ignored.
func (f *FolderNode) AddFileNodes(files ...*FileNode) {
	f.files = addChildren(f, f.files, files)
}

// RemoveFileNodes removes the children with the paths of files. Paths that
// are not children are reported to the logger and skipped.
func (f *FolderNode) RemoveFileNodes(files ...*FileNode) {
	f.files = removeChildren(f, f.files, files)
}

// SetFileNodes reconciles the file children with files. Children whose path
// is still present are kept as they are.
func (f *FolderNode) SetFileNodes(files ...*FileNode) (removed, added []*FileNode) {
	removed, added = sortedlist.Compare(f.files, sortedByPath(files), byPath[*FileNode])
	f.RemoveFileNodes(removed...)
	f.AddFileNodes(added...)
	return removed, added
}

func (f *FolderNode) AddFolderNodes(folders ...*FolderNode) {
	f.folders = addChildren(f, f.folders, folders)
}

func (f *FolderNode) RemoveFolderNodes(folders ...*FolderNode) {
	f.folders = removeChildren(f, f.folders, folders)
}

func addChildren[N Node](f *FolderNode, existing, nodes []N) []N {
	added := sortedByPath(nodes)
	_, added = sortedlist.Compare(existing, added, byPath[N])
	for _, n := range added {
		n.base().parent = f.self
	}

	return mergeByPath(existing, added)
}

func removeChildren[N Node](f *FolderNode, existing, nodes []N) []N {
	remaining := sortedlist.Subtract(existing, sortedByPath(nodes), byPath[N], func(n N) {
		f.log().WarnfCtx(context.Background(), "[treesync] %s is not a child of %q: %s", n.NodeType(), f.path, n.Path())
	})

	removed, _ := sortedlist.Compare(existing, remaining, byPath[N])
	for _, n := range removed {
		n.base().parent = nil
	}

	return remaining
}

func (f *FolderNode) log() Logger {
	for c := f; c != nil; c = c.ParentFolder() {
		if c.logger != nil {
			return c.logger
		}
	}

	return logger.NewSlog(slog.Default())
}
