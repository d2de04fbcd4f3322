package treesync

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyuff/es"
	"github.com/kyuff/treesync/internal/database"
	"github.com/kyuff/treesync/internal/hash"
	"github.com/kyuff/treesync/internal/metrics"
	"github.com/kyuff/treesync/internal/reconcilers"
	"github.com/kyuff/treesync/internal/seqs"
	"github.com/kyuff/treesync/internal/singleflight"
	"github.com/kyuff/treesync/internal/uuid"
	"github.com/kyuff/treesync/sortedlist"
	"github.com/kyuff/treesync/tree"
)

var (
	ErrUnknownProject = errors.New("unknown project")
	ErrProjectExists  = errors.New("project already registered")
	ErrSyncInProgress = errors.New("sync already in progress")
)

const historyPageSize = 500

// Change is the outcome of syncing a project. Removed and Added are sorted.
type Change struct {
	ProjectID  string
	SnapshotID string
	TakenAt    time.Time
	Removed    []string
	Added      []string
}

// Empty reports whether the sync found no difference.
func (c Change) Empty() bool {
	return len(c.Removed) == 0 && len(c.Added) == 0
}

func New(opts ...Option) (*Syncer, error) {
	cfg := applyOptions(defaultOptions(), opts...)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("[treesync] invalid configuration: %w", err)
	}

	ctx := cfg.startCtx()

	schema, err := database.NewSchema(cfg.tablePrefix)
	if err != nil {
		return nil, fmt.Errorf("[treesync] failed rendering schema: %w", err)
	}

	err = cfg.connector.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("[treesync] failed connecting to database: %w", err)
	}

	err = cfg.connector.ApplyMigrations(ctx, func(pool *pgxpool.Pool) error {
		return database.Migrate(ctx, pool, schema)
	})
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("[treesync] failed applying migrations: %w", err),
			cfg.connector.Close(),
		)
	}

	codec := newJSONCodec()
	err = codec.Register(StreamType, FileAdded{}, FileRemoved{})
	if err != nil {
		return nil, errors.Join(err, cfg.connector.Close())
	}

	return &Syncer{
		cfg:      cfg,
		schema:   schema,
		codec:    codec,
		writer:   newEventWriter(schema, codec),
		metrics:  metrics.New(cfg.registerer, "treesync"),
		single:   singleflight.New[string](),
		projects: make(map[string]*project),
	}, nil
}

// Syncer keeps a stored snapshot of each registered project in step with the
// files the project lists, and records every difference as an event.
type Syncer struct {
	cfg     *Config
	schema  *database.Schema
	codec   codec
	writer  writer
	metrics *metrics.Metrics
	single  *singleflight.Group[string]

	mu       sync.RWMutex
	projects map[string]*project
}

type project struct {
	lister Lister

	mu   sync.RWMutex
	tree *tree.ProjectNode
}

// Register adds a project to the Syncer. It is not synced until Sync is
// called or the periodic sync reaches it.
func (s *Syncer) Register(projectID string, lister Lister) error {
	if projectID == "" {
		return errors.New("[treesync] register: empty project id")
	}

	if lister == nil {
		return fmt.Errorf("[treesync] register %q: missing lister", projectID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[projectID]; ok {
		return fmt.Errorf("[treesync] register %q: %w", projectID, ErrProjectExists)
	}

	s.projects[projectID] = &project{lister: lister}
	return nil
}

// ProjectIDs returns the registered project ids in sorted order.
func (s *Syncer) ProjectIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return ids
}

func (s *Syncer) project(projectID string) (*project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("[treesync] %w: %q", ErrUnknownProject, projectID)
	}

	return p, nil
}

// Tree returns the live tree of the project as of its latest sync by this
// Syncer. It is nil until the project has been synced once. Later syncs
// update the returned tree in place, use Files for a stable copy.
func (s *Syncer) Tree(projectID string) (*tree.ProjectNode, error) {
	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.tree, nil
}

// Files returns the sorted file paths of the project's live tree.
func (s *Syncer) Files(projectID string) ([]string, error) {
	p, err := s.project(projectID)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil {
		return nil, nil
	}

	return tree.FilePaths(p.tree), nil
}

// Sync compares the current listing of the project with its stored snapshot.
// The new snapshot and one event per difference are written in a single
// transaction. A sync of a project that is already running returns
// ErrSyncInProgress.
func (s *Syncer) Sync(ctx context.Context, projectID string) (Change, error) {
	p, err := s.project(projectID)
	if err != nil {
		return Change{}, err
	}

	var change Change
	err = s.single.TryDo(projectID, func() error {
		var err error
		change, err = s.sync(ctx, projectID, p)
		return err
	})
	if errors.Is(err, singleflight.ErrInFlight) {
		return Change{}, fmt.Errorf("[treesync] sync %q: %w", projectID, ErrSyncInProgress)
	}
	if err != nil {
		s.metrics.SyncFailed(projectID)
		s.cfg.logger.ErrorfCtx(ctx, "[treesync] Sync of project %q failed: %s", projectID, err)
		return Change{}, err
	}

	return change, nil
}

func (s *Syncer) sync(ctx context.Context, projectID string, p *project) (Change, error) {
	var start = time.Now()

	current, err := p.lister.List(ctx)
	if err != nil {
		return Change{}, fmt.Errorf("[treesync] list %q: %w", projectID, err)
	}

	if err = sortedlist.CheckSorted(current, cmp.Less[string]); err != nil {
		return Change{}, fmt.Errorf("[treesync] list %q: %w", projectID, err)
	}

	var change = Change{
		ProjectID:  projectID,
		SnapshotID: uuid.V7AtTime(start),
		TakenAt:    start.UTC().Truncate(time.Microsecond),
	}

	err = s.cfg.connector.WriteTx(ctx, func(tx pgx.Tx) error {
		err := s.schema.AdvisoryXactLock(ctx, tx, s.lockID(projectID))
		if err != nil {
			return err
		}

		stored, err := s.schema.SelectSnapshotFiles(ctx, tx, projectID)
		if err != nil {
			return err
		}

		change.Removed, change.Added = sortedlist.Compare(stored, current, cmp.Less[string])

		if _, err = s.schema.DeleteSnapshotFiles(ctx, tx, projectID, change.Removed); err != nil {
			return err
		}

		if _, err = s.schema.InsertSnapshotFiles(ctx, tx, projectID, change.Added); err != nil {
			return err
		}

		err = s.schema.UpsertSnapshot(ctx, tx, database.Snapshot{
			ProjectID:  projectID,
			SnapshotID: change.SnapshotID,
			TakenAt:    change.TakenAt,
			FileCount:  int64(len(current)),
		})
		if err != nil {
			return err
		}

		last, err := s.schema.SelectLastEventNumber(ctx, tx, StreamType, projectID)
		if err != nil {
			return err
		}

		_, err = s.writer.Write(ctx, tx, StreamType, seqs.Seq2(changeEvents(projectID, last, change)...))
		return err
	})
	if err != nil {
		return Change{}, err
	}

	s.checkRemoved(ctx, projectID, p, change.Removed)

	if err = s.updateTree(projectID, p, current); err != nil {
		return Change{}, err
	}

	s.metrics.SyncCompleted(projectID, time.Since(start), len(change.Removed), len(change.Added))
	if !change.Empty() {
		s.cfg.logger.InfofCtx(ctx, "[treesync] Synced project %q: %d removed, %d added", projectID, len(change.Removed), len(change.Added))
	}

	return change, nil
}

// checkRemoved reports removed paths that the live tree never held. They were
// stored by another Syncer sharing the tables.
func (s *Syncer) checkRemoved(ctx context.Context, projectID string, p *project, removed []string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.tree == nil || len(removed) == 0 {
		return
	}

	sortedlist.Subtract(tree.FilePaths(p.tree), removed, cmp.Less[string], func(path string) {
		s.metrics.Unmatched()
		s.cfg.logger.WarnfCtx(ctx, "[treesync] Project %q removed %q that this Syncer never listed", projectID, path)
	})
}

func (s *Syncer) updateTree(projectID string, p *project, current []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.tree == nil {
		t, err := tree.BuildProject("", current, tree.WithDisplayName(projectID), tree.WithLogger(s.cfg.logger))
		if err != nil {
			return fmt.Errorf("[treesync] build tree %q: %w", projectID, err)
		}

		p.tree = t
		return nil
	}

	if _, _, err := p.tree.Sync(current); err != nil {
		return fmt.Errorf("[treesync] sync tree %q: %w", projectID, err)
	}

	return nil
}

func (s *Syncer) lockID(projectID string) int64 {
	return int64(hash.FNV(s.schema.Prefix+"/"+projectID, math.MaxInt32))
}

// changeEvents numbers the events after last. Removals come before additions,
// each in path order.
func changeEvents(projectID string, last int64, change Change) []es.Event {
	var (
		events        = make([]es.Event, 0, len(change.Removed)+len(change.Added))
		storeStreamID = uuid.Named(StreamType + "/" + projectID)
		add           = func(content es.Content) {
			last++
			events = append(events, es.Event{
				StreamID:      projectID,
				StreamType:    StreamType,
				EventNumber:   last,
				EventTime:     change.TakenAt,
				Content:       content,
				StoreEventID:  uuid.V7AtTime(change.TakenAt),
				StoreStreamID: storeStreamID,
			})
		}
	)

	for _, p := range change.Removed {
		add(FileRemoved{Path: p})
	}

	for _, p := range change.Added {
		add(fileAdded(p))
	}

	return events
}

// History returns the change events of the project written after
// eventNumber, in order.
func (s *Syncer) History(ctx context.Context, projectID string, eventNumber int64) iter.Seq2[es.Event, error] {
	if _, err := s.project(projectID); err != nil {
		return seqs.Error2[es.Event](err)
	}

	return func(yield func(es.Event, error) bool) {
		conn, err := s.cfg.connector.AcquireRead(ctx)
		if err != nil {
			yield(es.Event{}, fmt.Errorf("[treesync] Failed to acquire read connection: %w", err))
			return
		}
		defer conn.Release()

		for {
			stored, err := s.schema.SelectEvents(ctx, conn, StreamType, projectID, eventNumber, historyPageSize)
			if err != nil {
				yield(es.Event{}, err)
				return
			}

			for _, row := range stored {
				content, err := s.codec.Decode(row.StreamType, row.ContentName, row.Content)
				if err != nil {
					yield(es.Event{}, err)
					return
				}

				if !yield(es.Event{
					StreamID:      row.StreamID,
					StreamType:    row.StreamType,
					EventNumber:   row.EventNumber,
					EventTime:     row.EventTime,
					Content:       content,
					StoreEventID:  row.StoreEventID,
					StoreStreamID: row.StoreStreamID,
				}, nil) {
					return
				}

				eventNumber = row.EventNumber
			}

			if len(stored) < historyPageSize {
				return
			}
		}
	}
}

// Start runs the periodic sync of all registered projects until ctx is done.
// It returns an error when the periodic sync gave up after repeated failures.
func (s *Syncer) Start(ctx context.Context) error {
	r := reconcilers.FeatureFlag(s.cfg.periodicSync,
		reconcilers.NewPeriodic(s.cfg.logger, s, reconcilers.PeriodicConfig{
			Interval:       s.cfg.syncInterval,
			ProcessTimeout: s.cfg.syncTimeout,
			MaxErrors:      s.cfg.maxErrors,
			Concurrency:    s.cfg.concurrency,
			Backoff:        s.cfg.backoff,
		}),
	)

	return r.Reconcile(ctx, syncProcessor{s: s})
}

func (s *Syncer) Close() error {
	return errors.Join(
		s.cfg.connector.Close(),
	)
}

// syncProcessor lets the periodic sync skip projects that are already being
// synced.
type syncProcessor struct {
	s *Syncer
}

func (p syncProcessor) Process(ctx context.Context, projectID string) error {
	_, err := p.s.Sync(ctx, projectID)
	if errors.Is(err, ErrSyncInProgress) {
		return nil
	}

	return err
}
