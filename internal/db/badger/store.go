package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds settings for the embedded store.
type Config struct {
	Path           string
	InMemory       bool
	SyncWrites     bool
	GCInterval     time.Duration // 0 disables value log GC
	GCDiscardRatio float64
	Logger         *zap.Logger
}

// Store implements db.Store on an embedded badger database.
type Store struct {
	db     *badger.DB
	gc     *gcRunner
	logger *zap.Logger
}

// NewStore opens the database at cfg.Path, or in memory when cfg.InMemory is set.
func NewStore(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.
		WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&zapLogger{l: logger.Named("badger").Sugar()})

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	s := &Store{db: bdb, logger: logger}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		ratio := cfg.GCDiscardRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = 0.5
		}
		s.gc = startGC(bdb, cfg.GCInterval, ratio, logger)
	}
	return s, nil
}

// Ping reports whether the database is open.
func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return &db.Error{Op: db.OpPing, Err: errors.New("database closed")}
	}
	return nil
}

// Close stops GC and closes the database.
func (s *Store) Close() {
	if s.gc != nil {
		s.gc.stop()
	}
	if err := s.db.Close(); err != nil {
		s.logger.Warn("badger close failed", zap.Error(err))
	}
}

// WaitForReady returns immediately; an opened embedded database is ready.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return out, nil
}

// SetNX checks and sets inside one update transaction. A concurrent writer on
// the same key makes the commit fail with ErrConflict; the key then exists.
func (s *Store) SetNX(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		switch {
		case err == nil:
			return db.ErrKeyExists
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set([]byte(key), value)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrKeyExists), errors.Is(err, badger.ErrConflict):
		return db.ErrKeyExists
	default:
		return &db.Error{Op: db.OpSetNX, Err: err}
	}
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del deletes a key, reporting ErrKeyNotFound when it was absent.
func (s *Store) Del(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			return err
		}
		return txn.Delete([]byte(key))
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return db.ErrKeyNotFound
	case errors.Is(err, badger.ErrConflict):
		// lost a race with another delete of the same key
		return db.ErrKeyNotFound
	default:
		return &db.Error{Op: db.OpDel, Err: err}
	}
}

// ScanPrefix iterates one read transaction, so the result is a snapshot.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]db.KeyValue, error) {
	var out []db.KeyValue
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         []byte(prefix),
		})
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix([]byte(prefix)); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			out = append(out, db.KeyValue{Key: string(item.KeyCopy(nil)), Value: val})
		}
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpIterate, Err: err}
	}
	return out, nil
}
