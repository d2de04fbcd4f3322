package reconcilers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kyuff/treesync/backoff"
	"github.com/kyuff/treesync/internal/retry"
	"golang.org/x/sync/errgroup"
)

type PeriodicConfig struct {
	Interval       time.Duration
	ProcessTimeout time.Duration
	MaxErrors      int
	Concurrency    int
	Backoff        backoff.Func
}

func NewPeriodic(logger Logger, projects Projects, cfg PeriodicConfig) *Periodic {
	if cfg.Backoff == nil {
		cfg.Backoff = backoff.Fixed(0)
	}

	return &Periodic{
		cfg:      cfg,
		logger:   logger,
		projects: projects,
		now:      time.Now,
		failures: make(map[string]failure),
	}
}

// Periodic processes every project on each tick. A project that fails is
// held back for the backoff delay of its consecutive failures.
type Periodic struct {
	cfg      PeriodicConfig
	logger   Logger
	projects Projects
	now      func() time.Time

	mu       sync.Mutex
	failures map[string]failure
}

type failure struct {
	retries   int64
	notBefore time.Time
}

func (h *Periodic) Reconcile(ctx context.Context, p Processor) error {
	err := retry.Continue(ctx, h.cfg.Interval, h.cfg.MaxErrors, func(ctx context.Context) error {
		return h.reconcile(ctx, p)
	})
	if err != nil {
		h.logger.ErrorfCtx(ctx, "[treesync] Failed to reconcile projects: %s", err)
		return err
	}

	return nil
}

func (h *Periodic) reconcile(ctx context.Context, p Processor) error {
	var g errgroup.Group
	if h.cfg.Concurrency > 0 {
		g.SetLimit(h.cfg.Concurrency)
	}

	now := h.now()
	for _, projectID := range h.projects.ProjectIDs() {
		if !h.due(projectID, now) {
			continue
		}

		g.Go(func() error {
			processCtx, processCancel := context.WithTimeout(ctx, h.cfg.ProcessTimeout)
			defer processCancel()

			err := p.Process(processCtx, projectID)
			h.record(ctx, projectID, err)
			if err != nil {
				return fmt.Errorf("project %q: %w", projectID, err)
			}

			return nil
		})
	}

	return g.Wait()
}

func (h *Periodic) due(projectID string, now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, ok := h.failures[projectID]
	return !ok || !now.Before(f.notBefore)
}

func (h *Periodic) record(ctx context.Context, projectID string, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err == nil {
		delete(h.failures, projectID)
		return
	}

	f := h.failures[projectID]
	f.retries++
	delay := h.cfg.Backoff(f.retries)
	f.notBefore = h.now().Add(delay)
	h.failures[projectID] = f

	h.logger.InfofCtx(ctx, "[treesync] Project %q failed %d times, holding back for %s", projectID, f.retries, delay)
}
