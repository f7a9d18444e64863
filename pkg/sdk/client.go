package stranalyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/db"
	dbBadger "github.com/kailas-cloud/stranalyzer/internal/db/badger"
	dbRedis "github.com/kailas-cloud/stranalyzer/internal/db/redis"
	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/repository/entry"
	healthuc "github.com/kailas-cloud/stranalyzer/internal/usecase/health"
	strusecase "github.com/kailas-cloud/stranalyzer/internal/usecase/strings"
)

const defaultReadinessTimeout = 10 * time.Second

const (
	driverBadger = "badger"
	driverRedis  = "redis"
	driverValkey = "valkey"
)

// Internal interfaces, replaced in tests.
type stringsUseCase interface {
	Create(ctx context.Context, value string) (analysis.Entry, error)
	Get(ctx context.Context, value string) (analysis.Entry, error)
	Delete(ctx context.Context, value string) error
	List(ctx context.Context, params map[string]string) (strusecase.ListResult, error)
	MaxLength() int
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the stranalyzer SDK entry point.
type Client struct {
	store   db.Store
	strings stringsUseCase
	health  healthUseCase
	obs     *observer
}

// New opens the configured store and returns a ready Client.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: domain.KeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("stranalyzer: storage required (use WithBadger, WithInMemory, WithValkey or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("stranalyzer: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverBadger:
		s, err := dbBadger.NewStore(dbBadger.Config{
			Path:     cfg.badgerPath,
			InMemory: cfg.inMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("stranalyzer: open badger store: %w", err)
		}
		return s, nil
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("stranalyzer: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("stranalyzer: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("stranalyzer: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := entry.New(store, cfg.keyPrefix)
	if cfg.zstd {
		repo = repo.WithCompression(entry.CompressionZstd)
	}

	return &Client{
		store:   store,
		strings: strusecase.New(repo).WithMaxLength(cfg.maxLength),
		health:  healthuc.New(store, nil),
		obs:     obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
