package treesync

import "github.com/kyuff/treesync/tree"

// StreamType is the event stream type of a project. The stream id is the
// project id.
const StreamType = "treesync.project"

// FileAdded is written when a path shows up in the listing of a project.
type FileAdded struct {
	Path     string `json:"path"`
	FileType string `json:"file_type"`
}

func (FileAdded) EventName() string {
	return "FileAdded"
}

// FileRemoved is written when a path is gone from the listing of a project.
type FileRemoved struct {
	Path string `json:"path"`
}

func (FileRemoved) EventName() string {
	return "FileRemoved"
}

func fileAdded(p string) FileAdded {
	return FileAdded{
		Path:     p,
		FileType: tree.FileTypeForPath(p).String(),
	}
}
