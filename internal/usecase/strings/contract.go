package strings

import (
	"context"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Repository defines the storage contract for analyzed strings.
type Repository interface {
	Insert(ctx context.Context, e *analysis.Entry) error
	Get(ctx context.Context, value string) (analysis.Entry, error)
	Delete(ctx context.Context, value string) error
	Scan(ctx context.Context, match func(e *analysis.Entry) bool) ([]analysis.Entry, error)
}
