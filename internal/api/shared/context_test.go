package shared

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var traceIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestSetAndGetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	assert.Regexp(t, traceIDPattern, traceID)
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
}

func TestGetTraceIDWithoutTraceID(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))

	ctx := context.WithValue(context.Background(), TraceIDKey, 42)
	assert.Equal(t, "", GetTraceID(ctx))
}

func TestGenerateTraceIDWithRandFailure(t *testing.T) {
	original := randReader
	randReader = failingReader{}
	t.Cleanup(func() { randReader = original })

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateTraceID()
		assert.Regexp(t, traceIDPattern, id)
		assert.False(t, seen[id], "fallback trace IDs should not repeat")
		seen[id] = true
	}
}
