package entry

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/db"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setNXFn      func(ctx context.Context, key string, value []byte) error
	delFn        func(ctx context.Context, key string) error
	scanPrefixFn func(ctx context.Context, prefix string) ([]db.KeyValue, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetNX(ctx context.Context, key string, value []byte) error {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) ScanPrefix(ctx context.Context, prefix string) ([]db.KeyValue, error) {
	if m.scanPrefixFn != nil {
		return m.scanPrefixFn(ctx, prefix)
	}
	return nil, nil
}

func newTestRepo(s store) *Repo {
	return New(s, "test:")
}

var baseTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func mustEntry(t *testing.T, value string, createdAt time.Time) analysis.Entry {
	t.Helper()
	e, err := analysis.New(value, analysis.DefaultMaxLength, createdAt)
	if err != nil {
		t.Fatalf("analysis.New(%q): %v", value, err)
	}
	return e
}

func mustEncode(t *testing.T, e *analysis.Entry, c Compression) []byte {
	t.Helper()
	data, err := encodeRecord(e, c)
	if err != nil {
		t.Fatalf("encodeRecord: %v", err)
	}
	return data
}
