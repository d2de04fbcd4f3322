package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyuff/treesync/internal/hash"
)

// Migrate brings the tables of schema up to the latest embedded version.
// Concurrent callers with the same prefix are serialized by an advisory
// lock held on a single connection.
func Migrate(ctx context.Context, pool *pgxpool.Pool, schema *Schema) error {
	return pool.AcquireFunc(ctx, func(conn *pgxpool.Conn) error {
		return migrate(ctx, conn, schema)
	})
}

func migrate(ctx context.Context, db DBTX, schema *Schema) error {
	migrations, err := parseSteps(migrationFiles, schema.Prefix)
	if err != nil {
		return err
	}

	pid := int64(hash.FNV(schema.Prefix, math.MaxInt32))
	err = schema.AdvisoryLock(ctx, db, pid)
	if err != nil {
		return err
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), time.Second*2)
		defer cancel()
		err := schema.AdvisoryUnlock(unlockCtx, db, pid)
		if err != nil {
			slog.ErrorContext(unlockCtx, fmt.Sprintf("[treesync] Migration unlock failed: %s", err))
		}
	}()

	err = schema.CreateMigrationTable(ctx, db)
	if err != nil {
		return err
	}

	currentVersion, err := schema.SelectCurrentMigration(ctx, db)
	if err != nil {
		return err
	}

	// the database must not be ahead of the code
	var highestVersion uint32
	for _, migration := range migrations {
		highestVersion = max(highestVersion, migration.version)
	}
	if highestVersion < currentVersion {
		return fmt.Errorf("[treesync] Version mismatch: current (%d) > highest (%d)", currentVersion, highestVersion)
	}

	for _, migration := range migrations {
		if migration.version <= currentVersion {
			continue
		}

		_, err = db.Exec(ctx, migration.ddl)
		if err != nil {
			return fmt.Errorf("[treesync] Migration %s failed: %w", migration.fileName, err)
		}

		err = schema.InsertMigrationRow(ctx, db, migration.version, migration.fileName, migration.Hash())
		if err != nil {
			return err
		}

		currentVersion = migration.version
	}

	return nil
}
