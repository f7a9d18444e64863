package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewStore_RequiresPath(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error without path")
	}
}

func TestNewStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(Config{Path: dir, GCInterval: time.Hour})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	if err := s.SetNX(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	s.Close()

	reopened, err := NewStore(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want v", got)
	}
}

func TestPing(t *testing.T) {
	s, err := NewStore(Config{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error after close")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSetNX_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetNX(ctx, "k", []byte("first")); err != nil {
		t.Fatalf("first SetNX: %v", err)
	}
	if err := s.SetNX(ctx, "k", []byte("second")); !errors.Is(err, db.ErrKeyExists) {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
	got, _ := s.Get(ctx, "k")
	if string(got) != "first" {
		t.Errorf("value overwritten: %q", got)
	}
}

func TestSetNX_ConcurrentSingleWinner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.SetNX(ctx, "race", []byte(fmt.Sprint(i)))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, db.ErrKeyExists):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins.Load())
	}
}

func TestDel(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Del(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound on missing key, got %v", err)
	}
	_ = s.SetNX(ctx, "k", []byte("v"))
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("expected key gone, got %v", err)
	}
}

func TestSetWithTTL(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "ttl", []byte("v"), time.Hour); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	got, err := s.Get(ctx, "ttl")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	// SetWithTTL overwrites
	if err := s.SetWithTTL(ctx, "ttl", []byte("w"), time.Hour); err != nil {
		t.Fatalf("SetWithTTL overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "ttl")
	if string(got) != "w" {
		t.Errorf("got %q, want w", got)
	}
}

func TestScanPrefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"app:str:b", "app:str:a", "app:other:x", "zzz"} {
		if err := s.SetNX(ctx, k, []byte(k)); err != nil {
			t.Fatalf("SetNX %s: %v", k, err)
		}
	}

	kvs, err := s.ScanPrefix(ctx, "app:str:")
	if err != nil {
		t.Fatalf("ScanPrefix: %v", err)
	}
	if len(kvs) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(kvs), kvs)
	}
	for _, kv := range kvs {
		if string(kv.Value) != kv.Key {
			t.Errorf("value mismatch for %s: %q", kv.Key, kv.Value)
		}
	}
}

func TestScanPrefix_CanceledContext(t *testing.T) {
	s := newTestStore(t)
	_ = s.SetNX(context.Background(), "p:1", []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.ScanPrefix(ctx, "p:"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
