// Package slug generates the short identifiers used by the link shortener service.
package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Alphabet defines the character set slugs are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length defines the length of generated slugs.
const Length = 7

// Generate creates a new random slug. Characters are drawn uniformly and
// independently from Alphabet; uniqueness is left to the store.
func Generate() (string, error) {
	var sb strings.Builder
	sb.Grow(Length)

	alphabetLength := big.NewInt(int64(len(Alphabet)))

	for i := 0; i < Length; i++ {
		randomIndex, err := rand.Int(rand.Reader, alphabetLength)
		if err != nil {
			return "", err
		}
		sb.WriteByte(Alphabet[randomIndex.Int64()])
	}
	return sb.String(), nil
}

// Valid reports whether s could have been produced by Generate.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}
