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
		name        string
		args        []string
		start       Config
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"server",
				"-a", "127.0.0.1:9090", "-d", "postgres://flag", "-s", "secret", "-t", "60",
				"-k", "key", "-u", "http://llm", "-m", "some/model", "-o", "http://a,http://b", "-l", "debug",
			},
			expected: &Config{
				HTTPAddr:              "127.0.0.1:9090",
				DatabaseDSN:           "postgres://flag",
				SecretKey:             "secret",
				TokenValidityDuration: time.Hour,
				AIProviderKey:         "key",
				AIProviderURL:         "http://llm",
				AIModel:               "some/model",
				AllowedOrigins:        []string{"http://a", "http://b"},
				LogLevel:              "debug",
			},
		},
		{
			name:  "unset flags keep earlier values",
			args:  []string{"server", "-c", "ignored.json", "-s", "flag-secret"},
			start: Config{HTTPAddr: ":3000", TokenValidityDuration: 90 * time.Second, AllowedOrigins: []string{"*"}},
			expected: &Config{
				HTTPAddr:              ":3000",
				SecretKey:             "flag-secret",
				TokenValidityDuration: 90 * time.Second,
				AllowedOrigins:        []string{"*"},
			},
		},
		{
			name:        "non-numeric ttl panics",
			args:        []string{"server", "-t", "day"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected, &config))
		})
	}
}
