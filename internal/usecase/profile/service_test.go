package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domprofile "github.com/kailas-cloud/stranalyzer/internal/domain/profile"
)

type mockFactSource struct {
	fact string
	err  error
}

func (m *mockFactSource) Fact(_ context.Context) (string, error) { return m.fact, m.err }

var testIdentity = Identity{FullName: "Ada Lovelace", Email: "ada@example.com", Stack: "Go"}

func TestGet_WithFact(t *testing.T) {
	now := time.Date(2025, 6, 7, 8, 9, 10, 123e6, time.FixedZone("X", 3600))
	svc := New(testIdentity, &mockFactSource{fact: "Cats purr."}).
		WithClock(func() time.Time { return now })

	p := svc.Get(context.Background())
	if p.FullName != "Ada Lovelace" || p.Email != "ada@example.com" || p.Stack != "Go" {
		t.Errorf("identity = %+v", p)
	}
	if p.CatFact != "Cats purr." {
		t.Errorf("fact = %q", p.CatFact)
	}
	if p.Status != StatusSuccess {
		t.Errorf("status = %q", p.Status)
	}
	if p.CurrentUTCTime.Location() != time.UTC || !p.CurrentUTCTime.Equal(now) {
		t.Errorf("time = %v, want UTC of %v", p.CurrentUTCTime, now)
	}
}

func TestGet_FactErrorUsesPlaceholder(t *testing.T) {
	svc := New(testIdentity, &mockFactSource{err: errors.New("timeout")})

	p := svc.Get(context.Background())
	if p.CatFact != domprofile.FactPlaceholderPrefix+"timeout" {
		t.Errorf("fact = %q", p.CatFact)
	}
	if p.Status != StatusSuccess {
		t.Errorf("status = %q", p.Status)
	}
}

func TestGet_NoSource(t *testing.T) {
	p := New(testIdentity, nil).Get(context.Background())
	if !strings.HasPrefix(p.CatFact, domprofile.FactPlaceholderPrefix) {
		t.Errorf("fact = %q", p.CatFact)
	}
}
