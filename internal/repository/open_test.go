package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		cfg      config.BackendConfig
		local    bool
		canWatch bool
	}{
		{"remote", config.BackendConfig{Type: config.BackendRemote, URL: "http://localhost:3000/anime", TimeoutSeconds: 1}, false, false},
		{"jsonfile", config.BackendConfig{Type: config.BackendJSONFile, FilePath: filepath.Join(dir, "anime.json")}, true, true},
		{"bolt", config.BackendConfig{Type: config.BackendBolt, BoltPath: filepath.Join(dir, "anime.db")}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := Open(tt.cfg)
			require.NoError(t, err)
			defer backend.Close()

			assert.Equal(t, tt.cfg.Type, backend.Type)
			assert.Equal(t, tt.local, backend.Local())
			assert.Equal(t, tt.canWatch, backend.CanWatch())
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(config.BackendConfig{Type: "postgres"})
	assert.ErrorContains(t, err, "unknown backend type")
}

func TestWatchWithoutSupportWaitsForContext(t *testing.T) {
	backend, err := Open(config.BackendConfig{Type: config.BackendRemote, URL: "http://localhost", TimeoutSeconds: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, backend.Watch(ctx, func() { t.Error("unexpected change") }))
}
