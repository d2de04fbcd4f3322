package treesync

import (
	"context"
	"fmt"
	"iter"

	"github.com/kyuff/es"
	"github.com/kyuff/treesync/internal/database"
)

var emptyMetadata = []byte("{}")

type writer interface {
	Write(ctx context.Context, db database.DBTX, streamType string, events iter.Seq2[es.Event, error]) (int, error)
}

func newEventWriter(schema *database.Schema, codec codec) *eventWriter {
	return &eventWriter{
		schema: schema,
		codec:  codec,
	}
}

type eventWriter struct {
	schema *database.Schema
	codec  codec
}

// Write stores the events of a single stream and returns how many were
// written.
func (w *eventWriter) Write(ctx context.Context, db database.DBTX, streamType string, events iter.Seq2[es.Event, error]) (int, error) {
	var eventCount = 0
	for event, err := range validateStreamWrite(streamType, events) {
		if err != nil {
			return eventCount, fmt.Errorf("[treesync] Range over events to be written failed: %w", err)
		}

		content, err := w.codec.Encode(event)
		if err != nil {
			return eventCount, err
		}

		err = w.schema.WriteEvent(ctx, db, event, content, emptyMetadata)
		if err != nil {
			return eventCount, fmt.Errorf("[treesync] Failed to write event: %w", err)
		}

		eventCount++
	}

	return eventCount, nil
}
