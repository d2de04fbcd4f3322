package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kyuff/treesync"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func watchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch --project ID=DIR [--project ID=DIR...]",
		Short: "Keep the snapshots of projects in step with their directories",
		Long: `Sync every project when it starts, whenever files change below its
directory, and periodically to catch changes the file watcher missed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			projects, err := parseProjects(v.GetStringSlice("project"))
			if err != nil {
				return err
			}

			syncer, err := openSyncer(cmd.Context(), v, log,
				treesync.WithSyncInterval(v.GetDuration("interval")),
				treesync.WithSyncTimeout(v.GetDuration("timeout")),
				treesync.WithMaxErrors(v.GetInt("max-errors")),
			)
			if err != nil {
				return err
			}
			defer syncer.Close()

			for _, p := range projects {
				if err = syncer.Register(p.id, treesync.Dir(p.dir)); err != nil {
					return err
				}
			}

			w, err := newWatcher(syncer, projects, v.GetDuration("debounce"), log, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer w.Close()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return syncer.Start(ctx)
			})
			g.Go(func() error {
				return w.Run(ctx)
			})

			return g.Wait()
		},
	}

	addDatabaseFlags(cmd.Flags())
	cmd.Flags().StringArray("project", nil, "Project to watch as ID=DIR, repeatable")
	cmd.Flags().Duration("interval", 30*time.Second, "Time between periodic syncs")
	cmd.Flags().Duration("timeout", 10*time.Second, "Time limit of a single project sync")
	cmd.Flags().Duration("debounce", 250*time.Millisecond, "Quiet time after a file change before syncing")
	cmd.Flags().Int("max-errors", 10, "Stop after this many failed periodic rounds in a row")

	return cmd
}

type watchedProject struct {
	id  string
	dir string
}

func parseProjects(args []string) ([]watchedProject, error) {
	if len(args) == 0 {
		return nil, errors.New("no --project given")
	}

	var projects []watchedProject
	for _, arg := range args {
		id, dir, ok := strings.Cut(arg, "=")
		if !ok || id == "" || dir == "" {
			return nil, fmt.Errorf("invalid project %q, want ID=DIR", arg)
		}

		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}

		projects = append(projects, watchedProject{id: id, dir: abs})
	}

	return projects, nil
}

type projectSyncer interface {
	Sync(ctx context.Context, projectID string) (treesync.Change, error)
}

// watcher syncs a project once its directory has been quiet for the
// debounce time after a change.
type watcher struct {
	syncer   projectSyncer
	projects []watchedProject
	debounce time.Duration
	log      *slog.Logger
	out      io.Writer
	fs       *fsnotify.Watcher
}

func newWatcher(s projectSyncer, projects []watchedProject, debounce time.Duration, log *slog.Logger, out io.Writer) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &watcher{
		syncer:   s,
		projects: projects,
		debounce: debounce,
		log:      log,
		out:      out,
		fs:       fsw,
	}

	for _, p := range projects {
		if err = w.addTree(p.dir); err != nil {
			return nil, errors.Join(err, fsw.Close())
		}
	}

	return w, nil
}

func (w *watcher) Close() error {
	return w.fs.Close()
}

// addTree watches dir and every directory below it. fsnotify watches are not
// recursive.
func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if p != dir && strings.HasPrefix(entry.Name(), ".") {
			return fs.SkipDir
		}

		return w.fs.Add(p)
	})
}

// owner returns the id of the project holding name.
func (w *watcher) owner(name string) (string, bool) {
	for _, p := range w.projects {
		if name == p.dir || strings.HasPrefix(name, p.dir+string(filepath.Separator)) {
			return p.id, true
		}
	}

	return "", false
}

func (w *watcher) Run(ctx context.Context) error {
	var (
		dirty = make(map[string]bool)
		timer = time.NewTimer(0)
	)
	defer timer.Stop()

	for _, p := range w.projects {
		dirty[p.id] = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}

			id, ok := w.owner(event.Name)
			if !ok {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err = w.addTree(event.Name); err != nil {
						w.log.WarnContext(ctx, "[treesync] Failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			dirty[id] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.WarnContext(ctx, "[treesync] File watcher error", "error", err)

		case <-timer.C:
			for id := range dirty {
				change, err := w.syncer.Sync(ctx, id)
				if errors.Is(err, treesync.ErrSyncInProgress) {
					timer.Reset(w.debounce)
					continue
				}

				delete(dirty, id)
				if err != nil {
					w.log.ErrorContext(ctx, "[treesync] Sync failed", "project", id, "error", err)
					continue
				}

				if !change.Empty() {
					printChange(w.out, change)
				}
			}
		}
	}
}
