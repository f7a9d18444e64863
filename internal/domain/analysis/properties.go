package analysis

import (
	"strings"
	"unicode/utf8"
)

// Properties is the deterministic property set computed over a value.
type Properties struct {
	Length           int
	IsPalindrome     bool
	UniqueCharacters int
	WordCount        int
	SHA256Hash       string
	Frequency        map[string]int
}

// Analyze computes the properties of value. It has no side effects and the
// result depends on value alone.
func Analyze(value string) Properties {
	freq := frequencyMap(value)
	return Properties{
		Length:           utf8.RuneCountInString(value),
		IsPalindrome:     isPalindrome(value),
		UniqueCharacters: len(freq),
		WordCount:        len(strings.Fields(value)),
		SHA256Hash:       DigestOf(value).String(),
		Frequency:        freq,
	}
}

// isPalindrome lowercases the whole value and compares it with its reverse
// code point by code point. Whitespace and punctuation are kept.
func isPalindrome(value string) bool {
	runes := []rune(strings.ToLower(value))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// frequencyMap counts every code point in a single left-to-right scan.
func frequencyMap(value string) map[string]int {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}
	return freq
}
