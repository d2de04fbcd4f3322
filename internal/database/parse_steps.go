package database

import (
	"bytes"
	"crypto/sha512"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"text/template"
)

//go:embed migrations/*.tmpl
var migrationFiles embed.FS

type step struct {
	version  uint32
	fileName string
	ddl      string
}

func (s step) Hash() string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(s.ddl)))
}

// parseSteps renders every NNN_name.tmpl in fileSystem. Versions must
// start at 1 and have no gaps.
func parseSteps(fileSystem fs.FS, prefix string) ([]step, error) {
	names, err := fs.Glob(fileSystem, "*/*.tmpl")
	if err != nil {
		return nil, err
	}

	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(path.Base(a), path.Base(b))
	})

	var params = inputParams{
		Prefix: prefix,
	}
	var migrations []step
	for _, name := range names {
		t, err := template.ParseFS(fileSystem, name)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		err = t.Execute(&buf, params)
		if err != nil {
			return nil, err
		}

		fileName := path.Base(name)
		version, err := extractVersionNumber(fileName)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, step{
			version:  version,
			fileName: fileName,
			ddl:      buf.String(),
		})
	}

	for i := 0; i < len(migrations); i++ {
		if uint32(i+1) != migrations[i].version {
			return nil, fmt.Errorf("wrong sequence: %s", migrations[i].fileName)
		}
	}

	return migrations, nil
}

func extractVersionNumber(name string) (uint32, error) {
	if len(name) < 4 {
		return 0, fmt.Errorf("file name too short: %s", name)
	}

	n, err := strconv.Atoi(name[0:3])
	if err != nil {
		return 0, fmt.Errorf("file name must start with numbers %q: %s", name, err)
	}

	return uint32(n), nil
}
