package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-a", "127.0.0.1:9090", "-d", "db", "-s", "secret", "-k", "cipher-key", "-w", "12",
			},
			expected: &Config{
				EndpointAddr: "127.0.0.1:9090",
				DatabaseDSN:  "db",
				JWTSecret:    "secret",
				CipherSecret: "cipher-key",
				BcryptCost:   12,
			},
		},
		{
			name: "unknown flags are filtered out",
			args: []string{"cmd", "-a", ":9000", "-z", "ignored"},
			expected: &Config{
				EndpointAddr: ":9000",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
