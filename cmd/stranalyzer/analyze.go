package main

import (
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// analyzeOutput mirrors the HTTP entry representation.
type analyzeOutput struct {
	ID         string            `json:"id"`
	Value      string            `json:"value"`
	Properties analyzeProperties `json:"properties"`
	CreatedAt  time.Time         `json:"created_at"`
}

type analyzeProperties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

func newAnalyzeCommand() *cobra.Command {
	var maxLength int
	var compact bool

	cmd := &cobra.Command{
		Use:   "analyze <value>...",
		Short: "Analyze strings without storing them",
		Long: `Compute the properties of each argument and print one JSON document per value.

Nothing is persisted; the output matches what POST /strings would return.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args, maxLength, compact, time.Now().UTC())
		},
	}

	cmd.Flags().IntVar(&maxLength, "max-length", analysis.DefaultMaxLength, "maximum value length in code points")
	cmd.Flags().BoolVar(&compact, "compact", false, "print one JSON object per line")

	return cmd
}

func runAnalyze(w io.Writer, values []string, maxLength int, compact bool, now time.Time) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}

	for _, v := range values {
		e, err := analysis.New(v, maxLength, now)
		if err != nil {
			return fmt.Errorf("analyze %q: %w", v, err)
		}
		p := e.Properties()
		out := analyzeOutput{
			ID:    e.ID().String(),
			Value: e.Value(),
			Properties: analyzeProperties{
				Length:                p.Length,
				IsPalindrome:          p.IsPalindrome,
				UniqueCharacters:      p.UniqueCharacters,
				WordCount:             p.WordCount,
				SHA256Hash:            p.SHA256Hash,
				CharacterFrequencyMap: p.Frequency,
			},
			CreatedAt: e.CreatedAt(),
		}
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode %q: %w", v, err)
		}
	}
	return nil
}
