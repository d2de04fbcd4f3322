package treesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyuff/treesync/backoff"
	"github.com/kyuff/treesync/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	logger       Logger
	startCtx     func() context.Context
	tablePrefix  string
	connector    Connector
	syncInterval time.Duration
	syncTimeout  time.Duration
	maxErrors    int
	concurrency  int
	backoff      backoff.Func
	registerer   prometheus.Registerer
	periodicSync bool
}

var tablePrefixRE = regexp.MustCompile(`^[a-z][a-z0-9]{1,20}$`)

func (c *Config) validate() error {
	if c.logger == nil {
		return errors.New("missing logger")
	}

	if c.startCtx == nil {
		return errors.New("missing start context")
	}

	if !tablePrefixRE.MatchString(c.tablePrefix) {
		return fmt.Errorf("invalid table prefix %q, must match: %s", c.tablePrefix, tablePrefixRE.String())
	}

	if c.connector == nil {
		return errors.New("missing database, use WithDSN or WithPool")
	}

	if c.syncInterval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", c.syncInterval)
	}

	if c.syncTimeout <= 0 {
		return fmt.Errorf("sync timeout must be positive, got %s", c.syncTimeout)
	}

	if c.maxErrors < 1 {
		return fmt.Errorf("max errors must be at least 1, got %d", c.maxErrors)
	}

	if c.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.concurrency)
	}

	if c.backoff == nil {
		return errors.New("missing backoff")
	}

	if c.registerer == nil {
		return errors.New("missing metrics registerer")
	}

	return nil
}

type Option func(cfg *Config)

func defaultOptions() *Config {
	return applyOptions(&Config{},
		// add default options here
		WithNoopLogger(),
		WithStartContext(context.Background()),
		WithTablePrefix("treesync"),
		WithSyncInterval(time.Second*30),
		WithSyncTimeout(time.Second*10),
		WithMaxErrors(10),
		WithConcurrency(4),
		WithBackoff(backoff.Capped(time.Minute*5, backoff.Exponential(time.Second))),
		WithRegisterer(prometheus.NewRegistry()),
		WithPeriodicSync(true),
	)
}

func applyOptions(options *Config, opts ...Option) *Config {
	for _, opt := range opts {
		opt(options)
	}

	return options
}

func WithLogger(logger Logger) Option {
	return func(opt *Config) {
		opt.logger = logger
	}
}

func WithNoopLogger() Option {
	return WithLogger(logger.Noop{})
}

func WithDefaultSlog() Option {
	return WithSlog(slog.Default())
}

func WithSlog(log *slog.Logger) Option {
	return WithLogger(
		logger.NewSlog(log),
	)
}

// WithStartContext uses the provided context during initialization.
func WithStartContext(ctx context.Context) Option {
	return func(opt *Config) {
		opt.startCtx = func() context.Context {
			return ctx
		}
	}
}

// WithTablePrefix uses the given prefix for the database tables
// that this library creates.
// Table names will have the form "{prefix}_{name}".
// Example: "treesync_snapshots"
func WithTablePrefix(prefix string) Option {
	return func(cfg *Config) {
		cfg.tablePrefix = prefix
	}
}

// WithDSN connects to PostgreSQL using the connection string.
func WithDSN(dsn string) Option {
	return func(cfg *Config) {
		cfg.connector = InstanceFromDSN(dsn)
	}
}

// WithPool uses an existing connection pool. The pool is not closed by the
// Syncer.
func WithPool(pool *pgxpool.Pool) Option {
	return func(cfg *Config) {
		cfg.connector = InstanceFromPool(pool)
	}
}

// WithSyncInterval is the time between two periodic syncs.
func WithSyncInterval(interval time.Duration) Option {
	return func(cfg *Config) {
		cfg.syncInterval = interval
	}
}

// WithSyncTimeout limits how long the periodic sync of a single project may
// take.
func WithSyncTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.syncTimeout = timeout
	}
}

// WithMaxErrors stops the periodic sync after this many failed rounds in a
// row.
func WithMaxErrors(n int) Option {
	return func(cfg *Config) {
		cfg.maxErrors = n
	}
}

// WithConcurrency limits how many projects are synced at the same time by
// the periodic sync.
func WithConcurrency(n int) Option {
	return func(cfg *Config) {
		cfg.concurrency = n
	}
}

// WithBackoff sets how long a project that failed to sync is skipped by the
// periodic sync.
func WithBackoff(fn backoff.Func) Option {
	return func(cfg *Config) {
		cfg.backoff = fn
	}
}

// WithRegisterer registers the metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *Config) {
		cfg.registerer = reg
	}
}

// WithPeriodicSync turns the background sync started by Start on or off.
func WithPeriodicSync(enabled bool) Option {
	return func(cfg *Config) {
		cfg.periodicSync = enabled
	}
}
