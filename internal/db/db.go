package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeyValue is a single key with its stored bytes.
type KeyValue struct {
	Key   string
	Value []byte
}

// KVStore provides key-value operations.
type KVStore interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetNX stores value only if key is absent; returns ErrKeyExists otherwise.
	SetNX(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del returns ErrKeyNotFound when nothing was deleted.
	Del(ctx context.Context, key string) error
	// ScanPrefix returns every key/value under prefix from one read.
	ScanPrefix(ctx context.Context, prefix string) ([]KeyValue, error)
}
