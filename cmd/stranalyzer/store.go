package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/config"
	"github.com/kailas-cloud/stranalyzer/internal/db"
	dbBadger "github.com/kailas-cloud/stranalyzer/internal/db/badger"
	dbRedis "github.com/kailas-cloud/stranalyzer/internal/db/redis"
)

// openStore creates the database store for the configured driver.
func openStore(cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		s, err := dbBadger.NewStore(dbBadger.Config{
			Path:           cfg.Badger.Path,
			InMemory:       cfg.Badger.InMemory,
			SyncWrites:     cfg.Badger.SyncWrites,
			GCInterval:     time.Duration(cfg.Badger.GCIntervalSec) * time.Second,
			GCDiscardRatio: cfg.Badger.GCDiscardRatio,
			Logger:         logger,
		})
		if err != nil {
			return nil, fmt.Errorf("badger: %w", err)
		}
		return s, nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
