package filter

import (
	"fmt"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Field names an entry property a clause can compare.
type Field string

// Comparable entry properties.
const (
	FieldLength           Field = "length"
	FieldWordCount        Field = "word_count"
	FieldUniqueCharacters Field = "unique_characters"
	FieldIsPalindrome     Field = "is_palindrome"
)

// Op is a strict numeric comparison.
type Op string

// Numeric comparison operators.
const (
	OpGT Op = "gt"
	OpLT Op = "lt"
)

// Kind tags the clause variant.
type Kind int

// Clause variants.
const (
	KindNumeric Kind = iota + 1
	KindBoolean
	KindKeywords
)

// Predicate reports whether an entry's properties satisfy a condition.
type Predicate func(p *analysis.Properties) bool

// Clause is a single parsed filter: a numeric comparison, a boolean equality,
// or a keyword disjunction. Build it with NewNumeric, NewBoolean or NewKeywords.
type Clause struct {
	kind  Kind
	field Field
	op    Op
	bound int
	want  bool

	phrase   string
	triggers []Trigger
}

// NewNumeric creates a strict comparison on an integer property.
func NewNumeric(field Field, op Op, bound int) (Clause, error) {
	switch field {
	case FieldLength, FieldWordCount, FieldUniqueCharacters:
	default:
		return Clause{}, fmt.Errorf("field %q is not numeric", field)
	}
	if op != OpGT && op != OpLT {
		return Clause{}, fmt.Errorf("unknown operator %q", op)
	}
	if bound < 0 {
		return Clause{}, fmt.Errorf("bound must be non-negative, got %d", bound)
	}
	return Clause{kind: KindNumeric, field: field, op: op, bound: bound}, nil
}

// NewBoolean creates an exact match on a boolean property.
func NewBoolean(field Field, want bool) (Clause, error) {
	if field != FieldIsPalindrome {
		return Clause{}, fmt.Errorf("field %q is not boolean", field)
	}
	return Clause{kind: KindBoolean, field: field, want: want}, nil
}

// Kind returns the clause variant.
func (c Clause) Kind() Kind { return c.kind }

// Field returns the compared property (numeric and boolean clauses).
func (c Clause) Field() Field { return c.field }

// Op returns the comparison operator (numeric clauses).
func (c Clause) Op() Op { return c.op }

// Bound returns the comparison bound (numeric clauses).
func (c Clause) Bound() int { return c.bound }

// Want returns the expected value (boolean clauses).
func (c Clause) Want() bool { return c.want }

// Phrase returns the lowercased phrase (keyword clauses).
func (c Clause) Phrase() string { return c.phrase }

// Triggers returns the keyword triggers that fired (keyword clauses).
func (c Clause) Triggers() []Trigger { return c.triggers }

// Predicate compiles the clause.
func (c Clause) Predicate() Predicate {
	switch c.kind {
	case KindNumeric:
		get := numericGetter(c.field)
		bound := c.bound
		if c.op == OpGT {
			return func(p *analysis.Properties) bool { return get(p) > bound }
		}
		return func(p *analysis.Properties) bool { return get(p) < bound }
	case KindBoolean:
		want := c.want
		return func(p *analysis.Properties) bool { return p.IsPalindrome == want }
	case KindKeywords:
		preds := make([]Predicate, len(c.triggers))
		for i, t := range c.triggers {
			preds[i] = t.clause.Predicate()
		}
		return anyOf(preds)
	default:
		return func(*analysis.Properties) bool { return false }
	}
}

func numericGetter(f Field) func(p *analysis.Properties) int {
	switch f {
	case FieldWordCount:
		return func(p *analysis.Properties) int { return p.WordCount }
	case FieldUniqueCharacters:
		return func(p *analysis.Properties) int { return p.UniqueCharacters }
	default:
		return func(p *analysis.Properties) int { return p.Length }
	}
}

func allOf(preds []Predicate) Predicate {
	return func(p *analysis.Properties) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds []Predicate) Predicate {
	return func(p *analysis.Properties) bool {
		for _, pred := range preds {
			if pred(p) {
				return true
			}
		}
		return false
	}
}
