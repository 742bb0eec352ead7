package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManager_New(t *testing.T) {
	path := writeConfig(t, `{
		"app": {
			"username": "somebot",
			"oauth": "oauth:abc",
			"channels": ["#SomeChannel", "other"]
		}
	}`)

	m, err := New(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "somebot", cfg.App.Username)
	// channels are normalized on load
	assert.Equal(t, []string{"somechannel", "other"}, cfg.App.Channels)
}

func TestManager_NewWritesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	m, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "info", m.Get().App.LogLevel)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad log level",
			content: `{"app":{"log_level":"verbose","channels":["c"]}}`,
			wantErr: "log_level",
		},
		{
			name:    "username without oauth",
			content: `{"app":{"username":"bot","channels":["c"]}}`,
			wantErr: "both be set",
		},
		{
			name:    "no channels",
			content: `{"app":{}}`,
			wantErr: "channels",
		},
		{
			name:    "listen addr without auth token",
			content: `{"app":{"listen_addr":":8080","channels":["c"]}}`,
			wantErr: "auth_token",
		},
		{
			name:    "anonymous is valid",
			content: `{"app":{"channels":["c"]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(writeConfig(t, tt.content))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManager_Update(t *testing.T) {
	path := writeConfig(t, `{"app":{"channels":["c"]}}`)

	m, err := New(path)
	require.NoError(t, err)

	require.NoError(t, m.Update(func(cfg *Config) {
		cfg.App.Channels = append(cfg.App.Channels, "other")
	}))

	reloaded, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "other"}, reloaded.Get().App.Channels)

	// an update that fails validation is rejected
	assert.Error(t, m.Update(func(cfg *Config) {
		cfg.App.Channels = nil
	}))
}
