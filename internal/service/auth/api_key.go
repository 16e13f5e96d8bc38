package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// APIKeySecretBytes is the number of random bytes in an API key secret.
// The hex-encoded secret is twice as long.
const APIKeySecretBytes = 16

// GenerateAPIKey returns a new random secret rendered as lowercase hex.
func GenerateAPIKey() (string, error) {
	return generateAPIKeyFrom(rand.Reader)
}

func generateAPIKeyFrom(r io.Reader) (string, error) {
	b := make([]byte, APIKeySecretBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}
	return hex.EncodeToString(b), nil
}

// HashAPIKey returns the lookup hash of an API key secret: unsalted hex SHA-256,
// so a presented secret can be found by equality on the stored hash.
func HashAPIKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// StripPrefix removes the display prefix from a presented key, if present.
func StripPrefix(key, prefix string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), prefix)
}
