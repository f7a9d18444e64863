package filter

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Recognized query parameters.
const (
	ParamLengthGT           = "length_gt"
	ParamLengthLT           = "length_lt"
	ParamWordCountGT        = "word_count_gt"
	ParamWordCountLT        = "word_count_lt"
	ParamUniqueCharactersGT = "unique_characters_gt"
	ParamUniqueCharactersLT = "unique_characters_lt"
	ParamIsPalindrome       = "is_palindrome"
	ParamNaturalLanguage    = "natural_language_filter"
)

type numericParam struct {
	name  string
	field Field
	op    Op
}

var numericParams = []numericParam{
	{ParamLengthGT, FieldLength, OpGT},
	{ParamLengthLT, FieldLength, OpLT},
	{ParamWordCountGT, FieldWordCount, OpGT},
	{ParamWordCountLT, FieldWordCount, OpLT},
	{ParamUniqueCharactersGT, FieldUniqueCharacters, OpGT},
	{ParamUniqueCharactersLT, FieldUniqueCharacters, OpLT},
}

// Query is the compiled form of a list request: the clauses that parsed
// successfully and the record of what was applied.
type Query struct {
	clauses []Clause
	applied map[string]any
}

// Parse turns raw query parameters into a Query. Every recognized parameter
// is parsed on its own; absent or malformed ones are left out silently.
func Parse(params map[string]string) Query {
	q := Query{applied: make(map[string]any)}

	for _, np := range numericParams {
		raw, ok := params[np.name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		c, err := NewNumeric(np.field, np.op, n)
		if err != nil {
			continue
		}
		q.clauses = append(q.clauses, c)
		q.applied[np.name] = n
	}

	if raw, ok := params[ParamIsPalindrome]; ok {
		if want, ok := parseBoolLiteral(raw); ok {
			c, _ := NewBoolean(FieldIsPalindrome, want)
			q.clauses = append(q.clauses, c)
			q.applied[ParamIsPalindrome] = want
		}
	}

	if raw, ok := params[ParamNaturalLanguage]; ok {
		if c, ok := NewKeywords(raw); ok {
			q.clauses = append(q.clauses, c)
			keywords := make([]string, len(c.triggers))
			for i, t := range c.triggers {
				keywords[i] = t.keyword
			}
			q.applied[ParamNaturalLanguage] = map[string]any{
				"original":       c.phrase,
				"parsed_filters": keywords,
			}
		}
	}

	return q
}

// parseBoolLiteral accepts only "true" and "false", case-insensitively.
func parseBoolLiteral(s string) (value, ok bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	default:
		return false, false
	}
}

// Clauses returns the parsed clauses in parameter order.
func (q Query) Clauses() []Clause { return q.clauses }

// IsEmpty reports whether no filter applies.
func (q Query) IsEmpty() bool { return len(q.clauses) == 0 }

// Applied returns a copy of the applied-filters record.
func (q Query) Applied() map[string]any {
	out := make(map[string]any, len(q.applied))
	for k, v := range q.applied {
		out[k] = v
	}
	return out
}

// Predicate folds all clauses into one AND-combined predicate.
// An empty query matches everything.
func (q Query) Predicate() Predicate {
	preds := make([]Predicate, len(q.clauses))
	for i, c := range q.clauses {
		preds[i] = c.Predicate()
	}
	return allOf(preds)
}

// Match applies the query to a single entry.
func (q Query) Match(e *analysis.Entry) bool {
	p := e.Properties()
	return q.Predicate()(&p)
}
