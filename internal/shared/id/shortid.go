// Package id generates Stripe-style prefixed identifiers for API-visible
// entities. IDs are Base62, cryptographically random, URL-safe.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for different entity types
const (
	PrefixCard         = "card"
	PrefixUser         = "user"
	PrefixSubscription = "sub"
)

// Generate creates a random short ID with the specified length using Base62 encoding.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random short ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	id, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidatePrefix checks that the given ID carries the expected prefix.
func ValidatePrefix(id, prefix string) error {
	if !strings.HasPrefix(id, prefix+"_") {
		return fmt.Errorf("expected ID with prefix %q, got %q", prefix, id)
	}
	if len(id) <= len(prefix)+1 {
		return fmt.Errorf("ID %q has no body after prefix", id)
	}
	return nil
}
