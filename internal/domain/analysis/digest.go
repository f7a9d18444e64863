package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestLen is the length of a hex-encoded SHA-256 digest.
const DigestLen = sha256.Size * 2

// Digest is the content-addressed identity of a value: the lowercase hex
// SHA-256 of its UTF-8 bytes. The zero Digest is invalid.
type Digest struct {
	hex string
}

// DigestOf derives the digest of value. Never trimmed, never case-folded.
func DigestOf(value string) Digest {
	sum := sha256.Sum256([]byte(value))
	return Digest{hex: hex.EncodeToString(sum[:])}
}

// ParseDigest validates a stored digest string (64 lowercase hex chars).
func ParseDigest(s string) (Digest, error) {
	if len(s) != DigestLen {
		return Digest{}, fmt.Errorf("digest must be %d hex chars, got %d", DigestLen, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return Digest{}, fmt.Errorf("digest has non lowercase-hex char %q at %d", c, i)
		}
	}
	return Digest{hex: s}, nil
}

// String returns the hex form.
func (d Digest) String() string { return d.hex }

// IsZero reports whether d was never derived.
func (d Digest) IsZero() bool { return d.hex == "" }

// Matches reports whether d is the digest of value.
func (d Digest) Matches(value string) bool {
	return !d.IsZero() && d == DigestOf(value)
}
