package main

import (
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "serve by default", args: nil, want: options{}},
		{name: "migrate up", args: []string{"-migrate=up"}, want: options{migrate: "up"}},
		{name: "migrate status", args: []string{"-migrate", "status"}, want: options{migrate: "status"}},
		{name: "unsupported command", args: []string{"-migrate=create"}, wantErr: true},
		{name: "unknown flag", args: []string{"-port=9000"}, wantErr: true},
		{name: "stray argument", args: []string{"up"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	_, err := parseFlags([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
