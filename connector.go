package treesync

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyuff/treesync/internal/database"
)

type Connector interface {
	// Ping will always be the first call a Syncer does to a Connector.
	Ping(ctx context.Context) error

	// ApplyMigrations must call apply with the pool that needs DDL done.
	ApplyMigrations(ctx context.Context, apply func(pool *pgxpool.Pool) error) error

	// Close must free all underlying resources
	Close() error

	// AcquireRead supplies a connection used to read
	AcquireRead(ctx context.Context) (*pgxpool.Conn, error)

	// WriteTx runs fn in a transaction that is committed when fn returns nil.
	WriteTx(ctx context.Context, fn func(tx pgx.Tx) error) error

	// isConnector is a marker to enforce package implementations for now.
	isConnector()
}

// InstanceFromDSN connects lazily to dsn on the first Ping. The pool is
// closed with the Syncer.
func InstanceFromDSN(dsn string) *Instance {
	return &Instance{
		dsn: dsn,
	}
}

// InstanceFromPool uses a pool owned by the caller. Closing the Syncer leaves
// it open.
func InstanceFromPool(pool *pgxpool.Pool) *Instance {
	return &Instance{
		pool:     pool,
		borrowed: true,
	}
}

type Instance struct {
	dsn      string
	pool     *pgxpool.Pool
	borrowed bool
}

func (i *Instance) isConnector() {}

func (i *Instance) Ping(ctx context.Context) error {
	if i.pool == nil {
		var err error
		i.pool, err = database.Connect(ctx, i.dsn)
		if err != nil {
			return err
		}
	}

	return i.pool.Ping(ctx)
}

func (i *Instance) ApplyMigrations(ctx context.Context, apply func(pool *pgxpool.Pool) error) error {
	return apply(i.pool)
}

func (i *Instance) AcquireRead(ctx context.Context) (*pgxpool.Conn, error) {
	return i.pool.Acquire(ctx)
}

func (i *Instance) WriteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, i.pool, fn)
}

func (i *Instance) Close() error {
	if i.pool != nil && !i.borrowed {
		i.pool.Close()
	}
	i.pool = nil

	return nil
}
