package stranalyzer

import (
	"context"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	strusecase "github.com/kailas-cloud/stranalyzer/internal/usecase/strings"
)

// --- stringsUseCase mock ---

type mockStringsUC struct {
	createFn  func(ctx context.Context, value string) (analysis.Entry, error)
	getFn     func(ctx context.Context, value string) (analysis.Entry, error)
	deleteFn  func(ctx context.Context, value string) error
	listFn    func(ctx context.Context, params map[string]string) (strusecase.ListResult, error)
	maxLength int
}

func (m *mockStringsUC) Create(ctx context.Context, value string) (analysis.Entry, error) {
	return m.createFn(ctx, value)
}

func (m *mockStringsUC) Get(ctx context.Context, value string) (analysis.Entry, error) {
	return m.getFn(ctx, value)
}

func (m *mockStringsUC) Delete(ctx context.Context, value string) error {
	return m.deleteFn(ctx, value)
}

func (m *mockStringsUC) List(ctx context.Context, params map[string]string) (strusecase.ListResult, error) {
	return m.listFn(ctx, params)
}

func (m *mockStringsUC) MaxLength() int { return m.maxLength }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
