package strings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/query/filter"
)

// --- Mocks ---

// memRepo is an in-memory Repository keyed by value.
type memRepo struct {
	entries   map[string]analysis.Entry
	order     []string
	insertErr error
	scanErr   error
}

func newMemRepo() *memRepo {
	return &memRepo{entries: make(map[string]analysis.Entry)}
}

func (m *memRepo) Insert(_ context.Context, e *analysis.Entry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if _, ok := m.entries[e.Value()]; ok {
		return domain.ErrAlreadyExists
	}
	m.entries[e.Value()] = *e
	m.order = append(m.order, e.Value())
	return nil
}

func (m *memRepo) Get(_ context.Context, value string) (analysis.Entry, error) {
	e, ok := m.entries[value]
	if !ok {
		return analysis.Entry{}, domain.ErrStringNotFound
	}
	return e, nil
}

func (m *memRepo) Delete(_ context.Context, value string) error {
	if _, ok := m.entries[value]; !ok {
		return domain.ErrStringNotFound
	}
	delete(m.entries, value)
	return nil
}

func (m *memRepo) Scan(_ context.Context, match func(e *analysis.Entry) bool) ([]analysis.Entry, error) {
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var out []analysis.Entry
	for _, v := range m.order {
		e, ok := m.entries[v]
		if !ok {
			continue
		}
		if match == nil || match(&e) {
			out = append(out, e)
		}
	}
	return out, nil
}

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

func newTestService(repo Repository) *Service {
	return New(repo).WithClock(func() time.Time { return fixedNow })
}

// --- Tests ---

func TestCreate_Analyzes(t *testing.T) {
	svc := newTestService(newMemRepo())

	e, err := svc.Create(context.Background(), "Racecar")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !e.Properties().IsPalindrome {
		t.Error("expected palindrome")
	}
	if e.ID() != analysis.DigestOf("Racecar") {
		t.Errorf("id = %s", e.ID())
	}
	if !e.CreatedAt().Equal(fixedNow) {
		t.Errorf("created_at = %v, want %v", e.CreatedAt(), fixedNow)
	}
}

func TestCreate_DuplicateConflicts(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "hello"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := svc.Create(ctx, "hello")
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_Invalid(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo).WithMaxLength(3)

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"too long", "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.value)
			if !errors.Is(err, domain.ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
	if len(repo.entries) != 0 {
		t.Errorf("invalid values must not be stored, got %d", len(repo.entries))
	}
	if _, err := svc.Create(context.Background(), "日本語"); err != nil {
		t.Errorf("3 code points must fit max length 3: %v", err)
	}
}

func TestWithMaxLength_IgnoresNonPositive(t *testing.T) {
	svc := New(newMemRepo()).WithMaxLength(0)
	if svc.MaxLength() != analysis.DefaultMaxLength {
		t.Errorf("MaxLength = %d", svc.MaxLength())
	}
}

func TestGetDelete(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, "a b c")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, "a b c")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Properties().WordCount != created.Properties().WordCount || got.ID() != created.ID() {
		t.Error("Get must return the created entry")
	}

	if err := svc.Delete(ctx, "a b c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "a b c"); !errors.Is(err, domain.ErrStringNotFound) {
		t.Fatalf("Get after delete: %v", err)
	}
	if err := svc.Delete(ctx, "a b c"); !errors.Is(err, domain.ErrStringNotFound) {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestList_Filters(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()
	for _, v := range []string{"abc", "abcdefghijklmnopqrstuvwxy", "abcd", "level"} {
		if _, err := svc.Create(ctx, v); err != nil {
			t.Fatalf("Create %q: %v", v, err)
		}
	}

	tests := []struct {
		name        string
		params      map[string]string
		wantValues  []string
		wantApplied []string
	}{
		{
			name:       "no filters",
			params:     nil,
			wantValues: []string{"abc", "abcdefghijklmnopqrstuvwxy", "abcd", "level"},
		},
		{
			name:        "length_gt",
			params:      map[string]string{filter.ParamLengthGT: "20"},
			wantValues:  []string{"abcdefghijklmnopqrstuvwxy"},
			wantApplied: []string{filter.ParamLengthGT},
		},
		{
			name:        "palindrome and short",
			params:      map[string]string{filter.ParamIsPalindrome: "TRUE", filter.ParamLengthLT: "6"},
			wantValues:  []string{"level"},
			wantApplied: []string{filter.ParamIsPalindrome, filter.ParamLengthLT},
		},
		{
			name:       "malformed ignored",
			params:     map[string]string{filter.ParamLengthGT: "abc", filter.ParamIsPalindrome: "yes"},
			wantValues: []string{"abc", "abcdefghijklmnopqrstuvwxy", "abcd", "level"},
		},
		{
			name:        "keywords or-combined",
			params:      map[string]string{filter.ParamNaturalLanguage: "short and unique"},
			wantValues:  []string{"abc", "abcdefghijklmnopqrstuvwxy", "abcd"},
			wantApplied: []string{filter.ParamNaturalLanguage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(ctx, tt.params)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if res.Count != len(res.Entries) {
				t.Errorf("count %d != len %d", res.Count, len(res.Entries))
			}
			if len(res.Entries) != len(tt.wantValues) {
				t.Fatalf("got %d entries, want %d", len(res.Entries), len(tt.wantValues))
			}
			for i, want := range tt.wantValues {
				if got := res.Entries[i].Value(); got != want {
					t.Errorf("entry %d = %q, want %q", i, got, want)
				}
			}
			if len(res.Applied) != len(tt.wantApplied) {
				t.Fatalf("applied = %v, want keys %v", res.Applied, tt.wantApplied)
			}
			for _, k := range tt.wantApplied {
				if _, ok := res.Applied[k]; !ok {
					t.Errorf("applied missing %q", k)
				}
			}
		})
	}
}

func TestList_ScanError(t *testing.T) {
	repo := newMemRepo()
	repo.scanErr = errors.New("db down")
	svc := newTestService(repo)

	if _, err := svc.List(context.Background(), nil); !errors.Is(err, repo.scanErr) {
		t.Fatalf("expected wrapped scan error, got %v", err)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrInvalidValue, "invalid"},
		{domain.ErrAlreadyExists, "conflict"},
		{domain.ErrStringNotFound, "not_found"},
		{errors.New("x"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
