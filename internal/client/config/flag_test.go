package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "url and timeout", args: []string{"cmd", "-a", "https://papers.example", "-s", "20"},
			expected: &Config{ServerURL: "https://papers.example", SummarizeTimeout: 20 * time.Second}},
		{name: "unrelated flags ignored", args: []string{"cmd", "-config", "x.json", "-s", "5"},
			expected: &Config{SummarizeTimeout: 5 * time.Second}},
		{name: "incorrect timeout", args: []string{"cmd", "-s", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
