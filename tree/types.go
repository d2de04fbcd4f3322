// Package tree models projects as trees of folders and files whose children
// are kept sorted by path.
package tree

import (
	"context"
	"fmt"
)

type NodeType uint16

const (
	FileNodeType NodeType = iota + 1
	FolderNodeType
	VirtualFolderNodeType
	ProjectNodeType
	SessionNodeType
)

func (t NodeType) String() string {
	switch t {
	case FileNodeType:
		return "file"
	case FolderNodeType:
		return "folder"
	case VirtualFolderNodeType:
		return "virtual-folder"
	case ProjectNodeType:
		return "project"
	case SessionNodeType:
		return "session"
	default:
		return fmt.Sprintf("NodeType(%d)", uint16(t))
	}
}

// Priorities decide the order siblings are presented in. Higher goes first.
const (
	DefaultPriority              = 0
	DefaultFilePriority          = 100000
	DefaultFolderPriority        = 200000
	DefaultVirtualFolderPriority = 300000
	DefaultProjectPriority       = 400000
	DefaultProjectFilePriority   = 500000
)

type ProjectAction int

const (
	// InheritedFromParent means the parent node decides.
	InheritedFromParent ProjectAction = iota
	AddSubProject
	RemoveSubProject
	AddNewFile
	AddExistingFile
	AddExistingDirectory
	RemoveFile
	EraseFile
	Rename
	DuplicateFile
	HidePathActions
	HideFileActions
	HideFolderActions
	HasSubProjectRunConfigurations
)

//go:generate moq -stub -out mocks_test.go -pkg tree_test . Logger

type Logger interface {
	WarnfCtx(ctx context.Context, template string, args ...any)
}
