package analysis

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	e, err := New("Racecar", 500, ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Value() != "Racecar" {
		t.Errorf("Value = %q", e.Value())
	}
	if e.ID() != DigestOf("Racecar") {
		t.Errorf("ID = %s, want digest of value", e.ID())
	}
	if e.ID().String() != e.Properties().SHA256Hash {
		t.Error("ID and sha256_hash must agree")
	}
	if !e.Properties().IsPalindrome {
		t.Error("expected palindrome")
	}
	if e.CreatedAt().Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", e.CreatedAt().Location())
	}
	if !e.CreatedAt().Equal(ts) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt(), ts)
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New("", 500, time.Now())
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestNew_MaxLengthCountsCodePoints(t *testing.T) {
	// 5 code points, 10 bytes
	if _, err := New("ééééé", 5, time.Now()); err != nil {
		t.Fatalf("unexpected error at limit: %v", err)
	}
	_, err := New("éééééé", 5, time.Now())
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue over limit, got %v", err)
	}
}

func TestNew_DefaultMaxLength(t *testing.T) {
	if _, err := New(strings.Repeat("x", DefaultMaxLength), 0, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := New(strings.Repeat("x", DefaultMaxLength+1), 0, time.Now()); err == nil {
		t.Fatal("expected error past default max length")
	}
}

func TestReconstruct_RecomputesProperties(t *testing.T) {
	long := strings.Repeat("ab ", 300)
	e := Reconstruct(long, time.Unix(0, 0))
	if e.Properties().WordCount != 300 {
		t.Errorf("WordCount = %d, want 300", e.Properties().WordCount)
	}
	if !e.ID().Matches(long) {
		t.Error("reconstructed id must match value")
	}
}
