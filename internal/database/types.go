package database

import "time"

type Snapshot struct {
	ProjectID  string
	SnapshotID string
	TakenAt    time.Time
	FileCount  int64
}

// StoredEvent is a row of the events table with the content still encoded.
type StoredEvent struct {
	StreamType    string
	StreamID      string
	EventNumber   int64
	EventTime     time.Time
	StoreEventID  string
	StoreStreamID string
	ContentName   string
	Content       []byte
}
