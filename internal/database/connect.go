package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Optional tuning
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

const defaultTestHost = "localhost:5430"

// DSNTest creates a schema private to the test and returns a DSN using it.
// The test is skipped when no database is reachable.
func DSNTest(t *testing.T) string {
	t.Helper()
	var (
		host   = defaultTestHost
		schema = nameSchema(t.Name())
	)
	if h := os.Getenv("TREESYNC_TEST_DB_HOST"); h != "" {
		host = h
	}

	base := fmt.Sprintf("postgres://es:es@%s/es?sslmode=disable", host)
	pool, err := Connect(t.Context(), base)
	if err != nil {
		t.Skipf("database not available at %s: %s", host, err)
	}
	defer pool.Close()

	_, err = pool.Exec(t.Context(), fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, schema))
	if err != nil {
		t.Fatalf("create schema %s: %s", schema, err)
	}

	t.Logf("Using schema: %s", schema)
	return base + "&search_path=" + schema
}

// ConnectTest is DSNTest followed by Connect. The pool is closed when the
// test ends.
func ConnectTest(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := Connect(t.Context(), DSNTest(t))
	if err != nil {
		t.Fatalf("connect: %s", err)
	}
	t.Cleanup(pool.Close)

	return pool
}
