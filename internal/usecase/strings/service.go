package strings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/query/filter"
	"github.com/kailas-cloud/stranalyzer/internal/metrics"
)

// ListResult is one filtered snapshot of stored entries.
// Count always equals len(Entries).
type ListResult struct {
	Entries []analysis.Entry
	Count   int
	Applied map[string]any
}

// Service orchestrates analysis and persistence of strings.
type Service struct {
	repo      Repository
	maxLength int
	now       func() time.Time
}

// New creates a strings service.
func New(repo Repository) *Service {
	return &Service{
		repo:      repo,
		maxLength: analysis.DefaultMaxLength,
		now:       time.Now,
	}
}

// WithMaxLength overrides the maximum accepted value length in code points.
func (s *Service) WithMaxLength(n int) *Service {
	if n > 0 {
		s.maxLength = n
	}
	return s
}

// WithClock overrides the creation timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// MaxLength reports the configured length limit.
func (s *Service) MaxLength() int { return s.maxLength }

// Create analyzes value and stores it. Fails with domain.ErrAlreadyExists
// when the value is already stored.
func (s *Service) Create(ctx context.Context, value string) (analysis.Entry, error) {
	e, err := analysis.New(value, s.maxLength, s.now())
	if err != nil {
		record("create", err)
		return analysis.Entry{}, fmt.Errorf("analyze: %w", err)
	}

	if err := s.repo.Insert(ctx, &e); err != nil {
		record("create", err)
		return analysis.Entry{}, fmt.Errorf("insert: %w", err)
	}

	record("create", nil)
	return e, nil
}

// Get returns the stored entry for value.
func (s *Service) Get(ctx context.Context, value string) (analysis.Entry, error) {
	e, err := s.repo.Get(ctx, value)
	record("get", err)
	if err != nil {
		return analysis.Entry{}, fmt.Errorf("get: %w", err)
	}
	return e, nil
}

// Delete removes the stored entry for value.
func (s *Service) Delete(ctx context.Context, value string) error {
	err := s.repo.Delete(ctx, value)
	record("delete", err)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// List returns every stored entry satisfying the filters in params.
// Unrecognized or malformed parameters are ignored.
func (s *Service) List(ctx context.Context, params map[string]string) (ListResult, error) {
	q := filter.Parse(params)

	var match func(e *analysis.Entry) bool
	if !q.IsEmpty() {
		pred := q.Predicate()
		match = func(e *analysis.Entry) bool {
			p := e.Properties()
			return pred(&p)
		}
	}

	entries, err := s.repo.Scan(ctx, match)
	record("list", err)
	if err != nil {
		return ListResult{}, fmt.Errorf("scan: %w", err)
	}

	applied := q.Applied()
	for param := range applied {
		metrics.StringsFilterUsageTotal.WithLabelValues(param).Inc()
	}
	metrics.StringsListResultSize.Observe(float64(len(entries)))

	return ListResult{Entries: entries, Count: len(entries), Applied: applied}, nil
}

func record(op string, err error) {
	metrics.StringsOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidValue):
		return "invalid"
	case errors.Is(err, domain.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domain.ErrStringNotFound):
		return "not_found"
	default:
		return "error"
	}
}
