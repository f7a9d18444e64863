package analysis

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

// DefaultMaxLength is the externally facing bound on value length, in code points.
const DefaultMaxLength = 500

// Entry is one analyzed string (immutable value object). The id is always
// derived from the value; there is no way to set it independently.
type Entry struct {
	id         Digest
	value      string
	properties Properties
	createdAt  time.Time
}

// New validates value and creates an Entry.
// Value: non-empty, at most maxLength code points (maxLength <= 0 means DefaultMaxLength).
func New(value string, maxLength int, createdAt time.Time) (Entry, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if value == "" {
		return Entry{}, fmt.Errorf("value cannot be empty: %w", domain.ErrInvalidValue)
	}
	if n := utf8.RuneCountInString(value); n > maxLength {
		return Entry{}, fmt.Errorf("value too long (%d characters, max %d): %w", n, maxLength, domain.ErrInvalidValue)
	}
	return build(value, createdAt), nil
}

// Reconstruct creates an Entry from a stored value without length validation
// (storage hydration). Properties are recomputed from value.
func Reconstruct(value string, createdAt time.Time) Entry {
	return build(value, createdAt)
}

func build(value string, createdAt time.Time) Entry {
	return Entry{
		id:         DigestOf(value),
		value:      value,
		properties: Analyze(value),
		createdAt:  createdAt.UTC(),
	}
}

// ID returns the content-addressed identity.
func (e *Entry) ID() Digest { return e.id }

// Value returns the original string, byte for byte.
func (e *Entry) Value() string { return e.value }

// Properties returns the computed property set.
func (e *Entry) Properties() Properties { return e.properties }

// CreatedAt returns the insertion timestamp in UTC.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }
