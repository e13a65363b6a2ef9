// Package idgen produces opaque, prefixed identifiers for persisted records.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns "prefix_" followed by length characters drawn
// uniformly from [0-9a-z] using crypto/rand. Length must be positive.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + length)
	sb.WriteString(prefix)
	sb.WriteByte('_')

	max := big.NewInt(int64(len(idAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: reading randomness: %w", err)
		}
		sb.WriteByte(idAlphabet[n.Int64()])
	}

	return sb.String(), nil
}

// ValidateIDFormat reports whether id is "expectedPrefix_" followed by a
// non-empty run of [0-9a-z] characters.
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}

	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, c := range suffix {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
