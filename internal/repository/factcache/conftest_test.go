package factcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/db"
)

type mockSource struct {
	fact  string
	err   error
	calls int
}

func (m *mockSource) Fact(_ context.Context) (string, error) {
	m.calls++
	return m.fact, m.err
}

type healthySource struct {
	mockSource
	healthErr error
}

func (h *healthySource) HealthCheck(_ context.Context) error { return h.healthErr }

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCache(t *testing.T, inner *mockSource) (*Cache, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	c := New(inner, ms, "test:", time.Minute, nil, zap.NewNop())
	return c, ms
}
