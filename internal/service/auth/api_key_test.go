package auth

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	t.Parallel()

	key, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.Len(t, key, APIKeySecretBytes*2, "expected hex-encoded secret")

	_, err = hex.DecodeString(key)
	assert.NoError(t, err, "expected valid hex")
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	t.Parallel()

	const iterations = 1000
	secrets := make(map[string]struct{}, iterations)
	hashes := make(map[string]struct{}, iterations)

	for i := 0; i < iterations; i++ {
		key, err := GenerateAPIKey()
		require.NoError(t, err)

		_, dup := secrets[key]
		require.False(t, dup, "secret generated twice")
		secrets[key] = struct{}{}

		hash := HashAPIKey(key)
		_, dup = hashes[hash]
		require.False(t, dup, "lookup hash collided")
		hashes[hash] = struct{}{}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}

func TestGenerateAPIKey_ReaderFailure(t *testing.T) {
	t.Parallel()

	_, err := generateAPIKeyFrom(failingReader{})
	assert.ErrorIs(t, err, ErrKeyGeneration)

	// A short read is a failure, not a shorter key.
	_, err = generateAPIKeyFrom(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, ErrKeyGeneration)
}

func TestGenerateAPIKey_Deterministic(t *testing.T) {
	t.Parallel()

	key, err := generateAPIKeyFrom(bytes.NewReader(bytes.Repeat([]byte{0xab}, APIKeySecretBytes)))
	require.NoError(t, err)
	assert.Equal(t, "abababababababababababababababab", key)
}

func TestHashAPIKey(t *testing.T) {
	t.Parallel()

	// echo -n "abc" | sha256sum
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashAPIKey("abc"))

	secret, err := GenerateAPIKey()
	require.NoError(t, err)

	hash := HashAPIKey(secret)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, secret, hash, "hash must never equal the plaintext")
	assert.Equal(t, hash, HashAPIKey(secret), "hash must be stable for lookups")
}

func TestStripPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		key    string
		prefix string
		want   string
	}{
		{"with prefix", "cal_abc123", "cal_", "abc123"},
		{"without prefix", "abc123", "cal_", "abc123"},
		{"surrounding whitespace", "  cal_abc123\n", "cal_", "abc123"},
		{"empty prefix", "cal_abc123", "", "cal_abc123"},
		{"prefix only stripped once", "cal_cal_abc", "cal_", "cal_abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPrefix(tt.key, tt.prefix))
		})
	}
}
