// Package secret generates random tokens for generated configuration files.
package secret

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the set of symbols a generated secret is drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the length of BETTER_AUTH_SECRET.
const DefaultLength = 32

// Generate returns a string of exactly length symbols from Alphabet, each
// drawn uniformly from a cryptographically secure source.
func Generate(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("secret length must be at least 1, got %d", length)
	}

	size := big.NewInt(int64(len(Alphabet)))
	var b strings.Builder
	b.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(Alphabet[n.Int64()])
	}

	return b.String(), nil
}

// Mask hides all but the first four characters of s.
// Values of four characters or fewer are masked completely.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
