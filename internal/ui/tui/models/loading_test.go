package models

import (
	"testing"
	"time"

	"github.com/PizzaHomicide/hypelist/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadingShowsOperationAndTarget(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		backend config.BackendConfig
		title   string
		target  string
	}{
		{"load from file", OpLoad, config.BackendConfig{Type: config.BackendJSONFile, FilePath: "/tmp/anime.json"},
			"Loading anime list", "file /tmp/anime.json"},
		{"create on remote", OpCreate, config.BackendConfig{Type: config.BackendRemote, URL: "http://localhost:3000/anime"},
			"Adding anime", "remote http://localhost:3000/anime"},
		{"delete from bolt", OpDelete, config.BackendConfig{Type: config.BackendBolt, BoltPath: "/tmp/anime.db"},
			"Deleting anime", "database /tmp/anime.db"},
		{"lookup ignores backend", OpLookup, config.BackendConfig{Type: config.BackendJSONFile, FilePath: "/tmp/anime.json"},
			"Searching AniList", "AniList"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLoadingModel(tt.op, "Frieren", tt.backend, 10*time.Second)
			m.Resize(120, 40)

			assert.Equal(t, tt.op, m.Op())
			assert.Equal(t, tt.target, m.target)

			view := m.View()
			assert.Contains(t, view, tt.title)
			assert.Contains(t, view, tt.target)
			assert.Contains(t, view, "Frieren")
		})
	}
}

func TestLoadingStatusWarnsWhenSlow(t *testing.T) {
	m := NewLoadingModel(OpUpdate, "Frieren", config.BackendConfig{Type: config.BackendRemote}, 10*time.Second)

	assert.Empty(t, m.status(500*time.Millisecond))
	assert.Contains(t, m.status(2*time.Second), "2s of 10s")
	assert.NotContains(t, m.status(2*time.Second), "slow")
	assert.Contains(t, m.status(6*time.Second), "slow")
}

func TestLoadingStatusWithoutTimeout(t *testing.T) {
	m := NewLoadingModel(OpLoad, "list", config.BackendConfig{Type: config.BackendJSONFile}, 0)

	status := m.status(3 * time.Second)
	assert.Contains(t, status, "3s")
	assert.NotContains(t, status, "of")
}
