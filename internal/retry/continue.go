package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrMaxErrors = errors.New("max errors reached")

// Continue calls fn on every tick of interval until ctx is done. It gives up
// once fn has failed maxErrors times in a row.
func Continue(ctx context.Context, interval time.Duration, maxErrors int, fn func(ctx context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var errorCount = 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := fn(ctx)
			if ctx.Err() != nil {
				return nil
			}

			if err == nil {
				errorCount = 0
				continue
			}

			errorCount++
			if errorCount >= maxErrors {
				return fmt.Errorf("%w after %d attempts: %w", ErrMaxErrors, errorCount, err)
			}
		}
	}
}
