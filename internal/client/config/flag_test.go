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
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-i", "10", "-d", "/tmp/f.db", "-r", "0", "-z", "UTC", "-l", "debug"},
			expected: &Config{
				ServerEndpointAddr:  "127.0.0.1:9090",
				OnlineCheckInterval: 10 * time.Second,
				DatabaseDSN:         "/tmp/f.db",
				RevealDelay:         0,
				Timezone:            "UTC",
				LogLevel:            "debug",
			},
		},
		{
			name: "unknown flags are ignored",
			args: []string{"cmd", "-x", "1", "--d=other.db", "-r", "250"},
			expected: &Config{
				DatabaseDSN: "other.db",
				RevealDelay: 250 * time.Millisecond,
			},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect reveal delay", args: []string{"cmd", "-r", "1.5s"}, expectPanic: true},
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
