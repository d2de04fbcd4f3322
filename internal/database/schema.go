package database

import (
	"context"
	"fmt"

	"github.com/kyuff/es"
)

type sqlQueries struct {
	selectCurrentMigration string
	advisoryLock           string
	advisoryUnlock         string
	advisoryXactLock       string
	createMigrationTable   string
	insertMigrationRow     string
	selectSnapshot         string
	upsertSnapshot         string
	selectSnapshotFiles    string
	insertSnapshotFiles    string
	deleteSnapshotFiles    string
	selectLastEventNumber  string
	writeEvent             string
	selectEvents           string
}

// templates holds the queries before the table prefix is applied.
var templates = sqlQueries{}

func NewSchema(prefix string) (*Schema, error) {
	sql := templates
	err := renderTemplates(prefix,
		&sql.selectCurrentMigration,
		&sql.advisoryLock,
		&sql.advisoryUnlock,
		&sql.advisoryXactLock,
		&sql.createMigrationTable,
		&sql.insertMigrationRow,
		&sql.selectSnapshot,
		&sql.upsertSnapshot,
		&sql.selectSnapshotFiles,
		&sql.insertSnapshotFiles,
		&sql.deleteSnapshotFiles,
		&sql.selectLastEventNumber,
		&sql.writeEvent,
		&sql.selectEvents,
	)
	if err != nil {
		return nil, err
	}

	return &Schema{
		Prefix: prefix,
		sql:    sql,
	}, nil
}

type Schema struct {
	Prefix string
	sql    sqlQueries
}

func init() {
	templates.selectCurrentMigration = `
SELECT COALESCE(MAX(version), 0)
FROM {{ .Prefix }}_migrations;
`
}

func (s *Schema) SelectCurrentMigration(ctx context.Context, db DBTX) (uint32, error) {
	row := db.QueryRow(ctx, s.sql.selectCurrentMigration)
	var current uint32
	err := row.Scan(&current)
	if err != nil {
		return current, fmt.Errorf("select current migration version: %w", err)
	}

	return current, nil
}

func init() {
	templates.advisoryLock = "SELECT pg_advisory_lock($1);"
}

func (s *Schema) AdvisoryLock(ctx context.Context, db DBTX, pid int64) error {
	_, err := db.Exec(ctx, s.sql.advisoryLock, pid)
	if err != nil {
		return fmt.Errorf("advisory lock %d failed: %w", pid, err)
	}

	return nil
}

func init() {
	templates.advisoryUnlock = "SELECT pg_advisory_unlock($1);"
}

func (s *Schema) AdvisoryUnlock(ctx context.Context, db DBTX, pid int64) error {
	_, err := db.Exec(ctx, s.sql.advisoryUnlock, pid)
	if err != nil {
		return fmt.Errorf("advisory unlock %d failed: %w", pid, err)
	}

	return nil
}

func init() {
	templates.advisoryXactLock = "SELECT pg_advisory_xact_lock($1);"
}

// AdvisoryXactLock holds the lock until the surrounding transaction ends.
func (s *Schema) AdvisoryXactLock(ctx context.Context, db DBTX, pid int64) error {
	_, err := db.Exec(ctx, s.sql.advisoryXactLock, pid)
	if err != nil {
		return fmt.Errorf("advisory transaction lock %d failed: %w", pid, err)
	}

	return nil
}

func init() {
	templates.createMigrationTable = `
CREATE TABLE IF NOT EXISTS {{ .Prefix }}_migrations
(
    version     BIGINT                      NOT NULL,
    name        VARCHAR                     NOT NULL,
    hash        VARCHAR                     NOT NULL,
    applied     timestamptz DEFAULT NOW()   NOT NULL,
    CONSTRAINT {{ .Prefix }}_migrations_pkey PRIMARY KEY (version)
);
`
}

func (s *Schema) CreateMigrationTable(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, s.sql.createMigrationTable)
	if err != nil {
		return fmt.Errorf("create migration table failed: %w", err)
	}

	return nil
}

func init() {
	templates.insertMigrationRow = `
INSERT INTO {{ .Prefix }}_migrations (version, name, hash)
VALUES ($1, $2, $3)
ON CONFLICT DO NOTHING;
`
}

func (s *Schema) InsertMigrationRow(ctx context.Context, db DBTX, version uint32, name string, hash string) error {
	_, err := db.Exec(ctx, s.sql.insertMigrationRow, version, name, hash)
	if err != nil {
		return fmt.Errorf("insert migration row failed: %w", err)
	}

	return nil
}

func init() {
	templates.selectSnapshot = `
SELECT project_id,
       snapshot_id::text,
       taken_at,
       file_count
FROM {{ .Prefix }}_snapshots
WHERE project_id = $1;
`
}

// SelectSnapshot returns the latest snapshot of the project. found is false
// when the project was never synced.
func (s *Schema) SelectSnapshot(ctx context.Context, db DBTX, projectID string) (snapshot Snapshot, found bool, err error) {
	rows, err := db.Query(ctx, s.sql.selectSnapshot, projectID)
	if err != nil {
		return snapshot, false, fmt.Errorf("select snapshot %q: %w", projectID, err)
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.Scan(&snapshot.ProjectID, &snapshot.SnapshotID, &snapshot.TakenAt, &snapshot.FileCount)
		if err != nil {
			return snapshot, false, fmt.Errorf("scan snapshot %q: %w", projectID, err)
		}
		found = true
	}

	return snapshot, found, rows.Err()
}

func init() {
	templates.upsertSnapshot = `
INSERT INTO {{ .Prefix }}_snapshots (project_id, snapshot_id, taken_at, file_count)
VALUES ($1, $2, $3, $4)
ON CONFLICT (project_id) DO UPDATE
SET snapshot_id = EXCLUDED.snapshot_id,
    taken_at    = EXCLUDED.taken_at,
    file_count  = EXCLUDED.file_count;
`
}

func (s *Schema) UpsertSnapshot(ctx context.Context, db DBTX, snapshot Snapshot) error {
	_, err := db.Exec(ctx, s.sql.upsertSnapshot,
		snapshot.ProjectID,
		snapshot.SnapshotID,
		snapshot.TakenAt,
		snapshot.FileCount,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot %q: %w", snapshot.ProjectID, err)
	}

	return nil
}

func init() {
	templates.selectSnapshotFiles = `
SELECT path
FROM {{ .Prefix }}_snapshot_files
WHERE project_id = $1
ORDER BY path ASC;
`
}

// SelectSnapshotFiles returns the stored paths of the project in byte order,
// the same order Go sorts strings in.
func (s *Schema) SelectSnapshotFiles(ctx context.Context, db DBTX, projectID string) ([]string, error) {
	rows, err := db.Query(ctx, s.sql.selectSnapshotFiles, projectID)
	if err != nil {
		return nil, fmt.Errorf("select snapshot files %q: %w", projectID, err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err = rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

func init() {
	templates.insertSnapshotFiles = `
INSERT INTO {{ .Prefix }}_snapshot_files (project_id, path)
SELECT $1, unnest($2::varchar[]);
`
}

func (s *Schema) InsertSnapshotFiles(ctx context.Context, db DBTX, projectID string, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	tag, err := db.Exec(ctx, s.sql.insertSnapshotFiles, projectID, paths)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot files %q: %w", projectID, err)
	}

	return tag.RowsAffected(), nil
}

func init() {
	templates.deleteSnapshotFiles = `
DELETE FROM {{ .Prefix }}_snapshot_files
WHERE project_id = $1
  AND path = ANY ($2::varchar[]);
`
}

func (s *Schema) DeleteSnapshotFiles(ctx context.Context, db DBTX, projectID string, paths []string) (int64, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	tag, err := db.Exec(ctx, s.sql.deleteSnapshotFiles, projectID, paths)
	if err != nil {
		return 0, fmt.Errorf("delete snapshot files %q: %w", projectID, err)
	}

	return tag.RowsAffected(), nil
}

func init() {
	templates.selectLastEventNumber = `
SELECT COALESCE(MAX(event_number), 0)
FROM {{ .Prefix }}_events
WHERE stream_type = $1
  AND stream_id = $2;
`
}

func (s *Schema) SelectLastEventNumber(ctx context.Context, db DBTX, streamType, streamID string) (int64, error) {
	var last int64
	err := db.QueryRow(ctx, s.sql.selectLastEventNumber, streamType, streamID).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("select last event number %s.%s: %w", streamType, streamID, err)
	}

	return last, nil
}

func init() {
	templates.writeEvent = `
INSERT INTO {{ .Prefix }}_events (
                                stream_type,
                                stream_id,
                                event_number,
                                event_time,
                                store_event_id,
                                store_stream_id,
                                content_name,
                                content,
                                metadata
                            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`
}

func (s *Schema) WriteEvent(ctx context.Context, db DBTX, event es.Event, content []byte, metadata []byte) error {
	_, err := db.Exec(ctx, s.sql.writeEvent,
		event.StreamType,
		event.StreamID,
		event.EventNumber,
		event.EventTime,
		event.StoreEventID,
		event.StoreStreamID,
		event.Content.EventName(),
		content,
		metadata,
	)
	if err != nil {
		return fmt.Errorf("write event %s.%s #%d: %w", event.StreamType, event.StreamID, event.EventNumber, err)
	}

	return nil
}

func init() {
	templates.selectEvents = `
SELECT  stream_type,
        stream_id,
        event_number,
        event_time,
        store_event_id::text,
        store_stream_id::text,
        content_name,
        content
FROM {{ .Prefix }}_events
WHERE
        stream_type = $1
    AND stream_id = $2
    AND event_number > $3
ORDER BY event_number ASC
LIMIT $4;
`
}

// SelectEvents returns up to limit events after eventNumber.
func (s *Schema) SelectEvents(ctx context.Context, db DBTX, streamType, streamID string, eventNumber int64, limit int) ([]StoredEvent, error) {
	rows, err := db.Query(ctx, s.sql.selectEvents, streamType, streamID, eventNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("select events %s.%s: %w", streamType, streamID, err)
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var e StoredEvent
		err = rows.Scan(
			&e.StreamType,
			&e.StreamID,
			&e.EventNumber,
			&e.EventTime,
			&e.StoreEventID,
			&e.StoreStreamID,
			&e.ContentName,
			&e.Content,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
