package tree

import (
	"path"
	"strings"
)

type FileType uint16

const (
	UnknownFile FileType = iota
	HeaderFile
	SourceFile
	FormFile
	StateChartFile
	ResourceFile
	QMLFile
	ProjectFile
)

var fileTypeNames = [...]string{
	UnknownFile:    "unknown",
	HeaderFile:     "header",
	SourceFile:     "source",
	FormFile:       "form",
	StateChartFile: "statechart",
	ResourceFile:   "resource",
	QMLFile:        "qml",
	ProjectFile:    "project",
}

func (t FileType) String() string {
	if int(t) < len(fileTypeNames) {
		return fileTypeNames[t]
	}

	return "unknown"
}

var extensionTypes = map[string]FileType{
	".h":     HeaderFile,
	".hh":    HeaderFile,
	".hpp":   HeaderFile,
	".hxx":   HeaderFile,
	".c":     SourceFile,
	".cc":    SourceFile,
	".cpp":   SourceFile,
	".cxx":   SourceFile,
	".go":    SourceFile,
	".m":     SourceFile,
	".mm":    SourceFile,
	".ui":    FormFile,
	".scxml": StateChartFile,
	".qrc":   ResourceFile,
	".qml":   QMLFile,
	".js":    QMLFile,
	".pro":   ProjectFile,
	".pri":   ProjectFile,
	".qbs":   ProjectFile,
}

var projectFileNames = map[string]struct{}{
	"CMakeLists.txt": {},
	"go.mod":         {},
	"Makefile":       {},
}

// FileTypeForPath classifies a file by its name.
func FileTypeForPath(p string) FileType {
	base := path.Base(p)
	if _, ok := projectFileNames[base]; ok {
		return ProjectFile
	}

	if t, ok := extensionTypes[strings.ToLower(path.Ext(base))]; ok {
		return t
	}

	return UnknownFile
}
