package filter

import "strings"

// Trigger is one row of the keyword table: a substring and the clause it
// contributes when the phrase contains it.
type Trigger struct {
	keyword string
	clause  Clause
}

// Keyword returns the trigger substring.
func (t Trigger) Keyword() string { return t.keyword }

// Clause returns the clause the trigger contributes.
func (t Trigger) Clause() Clause { return t.clause }

// Keyword thresholds.
const (
	LongThreshold   = 20
	ShortThreshold  = 5
	UniqueThreshold = 10
)

// keywordTable is evaluated row by row against the lowercased phrase. Rows
// are independent; fired rows are OR-combined so order does not matter.
var keywordTable = []Trigger{
	{keyword: "palindrome", clause: mustBoolean(FieldIsPalindrome, true)},
	{keyword: "not palindrome", clause: mustBoolean(FieldIsPalindrome, false)},
	{keyword: "non-palindrome", clause: mustBoolean(FieldIsPalindrome, false)},
	{keyword: "long", clause: mustNumeric(FieldLength, OpGT, LongThreshold)},
	{keyword: "short", clause: mustNumeric(FieldLength, OpLT, ShortThreshold)},
	{keyword: "unique", clause: mustNumeric(FieldUniqueCharacters, OpGT, UniqueThreshold)},
	{keyword: "distinct", clause: mustNumeric(FieldUniqueCharacters, OpGT, UniqueThreshold)},
}

// NewKeywords lowercases phrase and matches it against the keyword table.
// ok is false when no keyword fires; the phrase then contributes nothing.
func NewKeywords(phrase string) (c Clause, ok bool) {
	lower := strings.ToLower(phrase)
	var fired []Trigger
	for _, t := range keywordTable {
		if strings.Contains(lower, t.keyword) {
			fired = append(fired, t)
		}
	}
	if len(fired) == 0 {
		return Clause{}, false
	}
	return Clause{kind: KindKeywords, phrase: lower, triggers: fired}, true
}

func mustBoolean(f Field, want bool) Clause {
	c, err := NewBoolean(f, want)
	if err != nil {
		panic(err)
	}
	return c
}

func mustNumeric(f Field, op Op, bound int) Clause {
	c, err := NewNumeric(f, op, bound)
	if err != nil {
		panic(err)
	}
	return c
}
