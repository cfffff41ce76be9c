package utils

import (
	"crypto/rand"
	"fmt"
)

// referenceAlphabet is the URL-safe character set for booking references.
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceCode generates a cryptographically random, URL-safe,
// uppercase alphanumeric code of the given length.
func GenerateReferenceCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = referenceAlphabet[int(b[i])%len(referenceAlphabet)]
	}
	return string(b), nil
}
