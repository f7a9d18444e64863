package stranalyzer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	"github.com/kailas-cloud/stranalyzer/internal/domain/query/filter"
)

// Analyze computes the properties of value without storing it.
func (c *Client) Analyze(value string) (Entry, error) {
	e, err := analysis.New(value, c.strings.MaxLength(), time.Now().UTC())
	if err != nil {
		return Entry{}, fmt.Errorf("analyze: %w", err)
	}
	return entryFromDomain(&e), nil
}

// Create analyzes and stores value. Storing the same value twice returns
// ErrAlreadyExists.
func (c *Client) Create(ctx context.Context, value string) (_ Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("create", start, err) }()

	e, err := c.strings.Create(ctx, value)
	if err != nil {
		return Entry{}, fmt.Errorf("create: %w", err)
	}
	return entryFromDomain(&e), nil
}

// Get returns the stored entry for the exact value.
func (c *Client) Get(ctx context.Context, value string) (_ Entry, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	e, err := c.strings.Get(ctx, value)
	if err != nil {
		return Entry{}, fmt.Errorf("get: %w", err)
	}
	return entryFromDomain(&e), nil
}

// Delete removes the stored entry for the exact value.
func (c *Client) Delete(ctx context.Context, value string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	if err = c.strings.Delete(ctx, value); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// List returns the stored entries matching every set field of f.
func (c *Client) List(ctx context.Context, f Filter) (ListResult, error) {
	return c.list(ctx, "list", f.params())
}

// Query filters by a free-text phrase. Each known keyword in it ("palindrome",
// "not palindrome", "long", "short", "unique", "distinct") adds a condition,
// and an entry matches if it meets any of them. A phrase with no known
// keyword does not filter and is left out of Applied.
func (c *Client) Query(ctx context.Context, phrase string) (ListResult, error) {
	return c.list(ctx, "query", map[string]string{filter.ParamNaturalLanguage: phrase})
}

func (c *Client) list(ctx context.Context, op string, params map[string]string) (_ ListResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	res, err := c.strings.List(ctx, params)
	if err != nil {
		return ListResult{}, fmt.Errorf("%s: %w", op, err)
	}

	out := ListResult{
		Entries: make([]Entry, 0, len(res.Entries)),
		Applied: res.Applied,
	}
	for i := range res.Entries {
		out.Entries = append(out.Entries, entryFromDomain(&res.Entries[i]))
	}
	return out, nil
}

// params renders the filter as the query parameters the compiler accepts.
// Bounds are exclusive, so Min/Max are shifted by one.
func (f Filter) params() map[string]string {
	p := make(map[string]string)
	setInt := func(key string, v *int, shift int) {
		if v != nil {
			p[key] = strconv.Itoa(*v + shift)
		}
	}
	setInt(filter.ParamLengthGT, f.MinLength, -1)
	setInt(filter.ParamLengthLT, f.MaxLength, 1)
	setInt(filter.ParamWordCountGT, f.MinWords, -1)
	setInt(filter.ParamWordCountLT, f.MaxWords, 1)
	setInt(filter.ParamUniqueCharactersGT, f.MinUniqueCharacters, -1)
	setInt(filter.ParamUniqueCharactersLT, f.MaxUniqueCharacters, 1)
	if f.IsPalindrome != nil {
		p[filter.ParamIsPalindrome] = strconv.FormatBool(*f.IsPalindrome)
	}
	return p
}

func entryFromDomain(e *analysis.Entry) Entry {
	p := e.Properties()
	freq := make(map[string]int, len(p.Frequency))
	for k, v := range p.Frequency {
		freq[k] = v
	}
	return Entry{
		ID:    e.ID().String(),
		Value: e.Value(),
		Properties: Properties{
			Length:           p.Length,
			IsPalindrome:     p.IsPalindrome,
			UniqueCharacters: p.UniqueCharacters,
			WordCount:        p.WordCount,
			SHA256Hash:       p.SHA256Hash,
			Frequency:        freq,
		},
		CreatedAt: e.CreatedAt(),
	}
}
