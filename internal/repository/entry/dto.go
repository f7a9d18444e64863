package entry

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
)

// Compression selects how records are encoded at rest.
type Compression string

const (
	// CompressionNone stores plain JSON.
	CompressionNone Compression = "none"
	// CompressionZstd stores zstd-compressed JSON.
	CompressionZstd Compression = "zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Shared coders; EncodeAll and DecodeAll are safe for concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// recordDTO is the stored form of an entry. Properties are persisted for
// inspection; hydration recomputes them from value.
type recordDTO struct {
	ID         string        `json:"id"`
	Value      string        `json:"value"`
	Properties propertiesDTO `json:"properties"`
	CreatedAt  time.Time     `json:"created_at"`
}

type propertiesDTO struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

func buildRecord(e *analysis.Entry) recordDTO {
	p := e.Properties()
	return recordDTO{
		ID:    e.ID().String(),
		Value: e.Value(),
		Properties: propertiesDTO{
			Length:                p.Length,
			IsPalindrome:          p.IsPalindrome,
			UniqueCharacters:      p.UniqueCharacters,
			WordCount:             p.WordCount,
			SHA256Hash:            p.SHA256Hash,
			CharacterFrequencyMap: p.Frequency,
		},
		CreatedAt: e.CreatedAt(),
	}
}

func encodeRecord(e *analysis.Entry, c Compression) ([]byte, error) {
	data, err := json.Marshal(buildRecord(e))
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if c == CompressionZstd {
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data))), nil
	}
	return data, nil
}

// decodeRecord accepts plain and compressed records regardless of the
// configured compression, so toggling it keeps old data readable.
func decodeRecord(data []byte) (recordDTO, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		plain, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return recordDTO{}, fmt.Errorf("decompress record: %w", err)
		}
		data = plain
	}
	var rec recordDTO
	if err := json.Unmarshal(data, &rec); err != nil {
		return recordDTO{}, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
