package entry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/db"
	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	logpkg "github.com/kailas-cloud/stranalyzer/internal/logger"
)

// store is the consumer interface for entries (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	ScanPrefix(ctx context.Context, prefix string) ([]db.KeyValue, error)
}

// Repo implements usecase/strings.Repository.
type Repo struct {
	store       store
	prefix      string
	compression Compression
}

// New creates an entry repository. Keys are "<keyPrefix>str:<digest>".
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix + "str:", compression: CompressionNone}
}

// WithCompression configures at-rest compression for new records.
func (r *Repo) WithCompression(c Compression) *Repo {
	if c == CompressionZstd {
		r.compression = CompressionZstd
	} else {
		r.compression = CompressionNone
	}
	return r
}

// Insert stores e unless an entry with the same digest exists.
func (r *Repo) Insert(ctx context.Context, e *analysis.Entry) error {
	data, err := encodeRecord(e, r.compression)
	if err != nil {
		return err
	}

	key := r.key(e.ID())
	if err := r.store.SetNX(ctx, key, data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("setnx %s: %w", key, err)
	}
	return nil
}

// Get returns the entry stored for value.
func (r *Repo) Get(ctx context.Context, value string) (analysis.Entry, error) {
	key := r.key(analysis.DigestOf(value))
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return analysis.Entry{}, domain.ErrStringNotFound
		}
		return analysis.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}

	e, err := hydrate(data)
	if err != nil {
		return analysis.Entry{}, fmt.Errorf("hydrate %s: %w", key, err)
	}
	if e.Value() != value {
		return analysis.Entry{}, fmt.Errorf("key %s holds a different value: %w", key, domain.ErrCorruptEntry)
	}
	return e, nil
}

// Delete removes the entry stored for value.
func (r *Repo) Delete(ctx context.Context, value string) error {
	key := r.key(analysis.DigestOf(value))
	if err := r.store.Del(ctx, key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrStringNotFound
		}
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Scan reads every entry once and keeps those accepted by match (nil keeps
// all). Results are ordered by creation time, then id. Unreadable records
// are skipped and logged.
func (r *Repo) Scan(ctx context.Context, match func(e *analysis.Entry) bool) ([]analysis.Entry, error) {
	kvs, err := r.store.ScanPrefix(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.prefix, err)
	}

	out := make([]analysis.Entry, 0, len(kvs))
	for _, kv := range kvs {
		e, err := hydrate(kv.Value)
		if err != nil {
			logpkg.FromContext(ctx).Warn("skipping unreadable entry",
				zap.String("key", kv.Key),
				zap.Error(err),
			)
			continue
		}
		if match == nil || match(&e) {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt(), out[j].CreatedAt()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r *Repo) key(d analysis.Digest) string {
	return r.prefix + d.String()
}

// hydrate decodes a record and checks that its id is the digest of its value.
func hydrate(data []byte) (analysis.Entry, error) {
	rec, err := decodeRecord(data)
	if err != nil {
		return analysis.Entry{}, err
	}
	id, err := analysis.ParseDigest(rec.ID)
	if err != nil {
		return analysis.Entry{}, fmt.Errorf("%w: %w", domain.ErrCorruptEntry, err)
	}
	if !id.Matches(rec.Value) {
		return analysis.Entry{}, fmt.Errorf("id %s does not match value: %w", rec.ID, domain.ErrCorruptEntry)
	}
	return analysis.Reconstruct(rec.Value, rec.CreatedAt), nil
}
