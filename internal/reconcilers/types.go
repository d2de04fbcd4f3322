package reconcilers

import (
	"context"
)

//go:generate moq -rm -out mocks_test.go -pkg reconcilers_test . Projects Processor Reconciler

type Projects interface {
	ProjectIDs() []string
}

type Logger interface {
	InfofCtx(ctx context.Context, template string, args ...any)
	ErrorfCtx(ctx context.Context, template string, args ...any)
}

type Processor interface {
	Process(ctx context.Context, projectID string) error
}
