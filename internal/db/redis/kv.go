package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/stranalyzer/internal/db"
)

const (
	scanCount  = 100
	fetchBatch = 256
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.b().Get().Key(key).Build()
	data, err := s.do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetNX stores value only if the key does not exist (SET key value NX).
func (s *Store) SetNX(ctx context.Context, key string, value []byte) error {
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Nx().Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return db.ErrKeyExists
		}
		return &db.Error{Op: db.OpSetNX, Err: err}
	}
	return nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.b().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del deletes a key. DEL is atomic, so the reply count doubles as the existence check.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// ScanPrefix collects keys with SCAN MATCH and fetches them in pipelined GET
// batches. Keys removed between the two phases are skipped.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]db.KeyValue, error) {
	keys, err := s.scan(ctx, escapeGlob(prefix)+"*")
	if err != nil {
		return nil, err
	}

	out := make([]db.KeyValue, 0, len(keys))
	for start := 0; start < len(keys); start += fetchBatch {
		end := min(start+fetchBatch, len(keys))
		batch := keys[start:end]

		cmds := make(rueidis.Commands, len(batch))
		for i, key := range batch {
			cmds[i] = s.b().Get().Key(key).Build()
		}

		for i, res := range s.client.DoMulti(ctx, cmds...) {
			data, err := res.AsBytes()
			if err != nil {
				if rueidis.IsRedisNil(err) {
					continue
				}
				return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("key %s: %w", batch[i], err)}
			}
			out = append(out, db.KeyValue{Key: batch[i], Value: data})
		}
	}
	return out, nil
}

func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(scanCount).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			break
		}
	}

	return dedupe(keys), nil
}

// dedupe drops repeats; SCAN may return a key more than once.
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// escapeGlob escapes glob metacharacters so prefix matches literally.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
