package factcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/db"
	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

// store is the consumer interface for the fact cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache keeps the most recent fact in a key-value store for a fixed TTL.
type Cache struct {
	inner      domain.FactSource
	store      store
	key        string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.FactSource,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		store:      s,
		key:        keyPrefix + "fact:current",
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Fact returns the cached fact or fetches a fresh one from the inner source.
// Store failures degrade to a pass-through call.
func (c *Cache) Fact(ctx context.Context) (string, error) {
	if fact, ok := c.getFromCache(ctx); ok {
		c.incCache("hit")
		return fact, nil
	}

	c.incCache("miss")

	fact, err := c.inner.Fact(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch fact: %w", err)
	}

	if err := c.store.SetWithTTL(ctx, c.key, []byte(fact), c.ttl); err != nil {
		c.logger.Warn("Failed to cache fact", zap.String("key", c.key), zap.Error(err))
	}
	return fact, nil
}

// HealthCheck delegates to the inner source when it supports health checks.
func (c *Cache) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) getFromCache(ctx context.Context) (string, bool) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached fact", zap.String("key", c.key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}
