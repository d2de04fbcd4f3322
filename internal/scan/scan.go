package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Lister produces the sorted file paths of a project.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

type ListerFunc func(ctx context.Context) ([]string, error)

func (fn ListerFunc) List(ctx context.Context) ([]string, error) {
	return fn(ctx)
}

// FS lists the regular files below root in fsys. Hidden entries (a leading
// dot) are skipped. Returned paths are slash separated and carry the root
// unless it is ".".
func FS(fsys fs.FS, root string) *Dir {
	return &Dir{
		fsys: fsys,
		root: path.Clean(root),
	}
}

type Dir struct {
	fsys fs.FS
	root string
}

func (d *Dir) List(ctx context.Context) ([]string, error) {
	var paths []string
	err := fs.WalkDir(d.fsys, d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if p != d.root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.Type().IsRegular() {
			paths = append(paths, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", d.root, err)
	}

	// WalkDir orders per directory, "a/x" comes before "a-b/x".
	slices.Sort(paths)
	return paths, nil
}
