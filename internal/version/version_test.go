package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfo(t *testing.T) {
	Version, Commit, BuildTime = "1.2.3", "abc123", "2025-01-01"
	t.Cleanup(func() { Version, Commit, BuildTime = "dev", "none", "unknown" })

	assert.Contains(t, GetVersionInfo(), "hypelist v1.2.3 (abc123, built 2025-01-01")
	assert.Equal(t, "hypelist/1.2.3", UserAgent())
}
