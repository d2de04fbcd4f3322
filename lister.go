package treesync

import (
	"context"
	"io/fs"
	"os"

	"github.com/kyuff/treesync/internal/scan"
)

// Lister returns the current files of a project as strictly sorted, slash
// separated paths relative to the project root.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

type ListerFunc = scan.ListerFunc

// FS lists the regular files below root in fsys. Hidden files and
// directories are skipped. Paths carry root unless it is ".".
func FS(fsys fs.FS, root string) Lister {
	return scan.FS(fsys, root)
}

// Dir lists the regular files below the directory dir on disk.
func Dir(dir string) Lister {
	return scan.FS(os.DirFS(dir), ".")
}
