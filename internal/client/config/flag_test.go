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
		{name: "all flags", args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-f", "x.db", "-i", "10", "-l", "debug"},
			expected: &Config{ServerURL: "http://127.0.0.1:9090", DatabasePath: "x.db", OnlineCheckInterval: 10 * time.Second, LogLevel: "debug"}},
		{name: "interval untouched when absent", args: []string{"cmd", "-a", "http://h"},
			expected: &Config{ServerURL: "http://h", OnlineCheckInterval: 1500 * time.Millisecond}},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{OnlineCheckInterval: 1500 * time.Millisecond}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
