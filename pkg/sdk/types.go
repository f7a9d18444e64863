package stranalyzer

import "time"

// Entry is one analyzed string.
type Entry struct {
	ID         string
	Value      string
	Properties Properties
	CreatedAt  time.Time
}

// Properties are the computed attributes of a value.
type Properties struct {
	Length           int
	IsPalindrome     bool
	UniqueCharacters int
	WordCount        int
	SHA256Hash       string
	Frequency        map[string]int // character -> occurrences
}

// Filter selects entries for List. Nil fields are ignored; bounds are inclusive.
type Filter struct {
	MinLength           *int
	MaxLength           *int
	MinWords            *int
	MaxWords            *int
	MinUniqueCharacters *int
	MaxUniqueCharacters *int
	IsPalindrome        *bool
}

// ListResult holds the matched entries, oldest first, and the filters that
// were actually applied, keyed like the HTTP API's filters_applied.
type ListResult struct {
	Entries []Entry
	Applied map[string]any
}

// Int returns a pointer to v, for Filter fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for Filter fields.
func Bool(v bool) *bool { return &v }
