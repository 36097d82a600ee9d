package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileWritesStructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradewise.log")

	log, err := NewFile("prod", path)
	require.NoError(t, err)

	log.With("subject", "s1").Info("scores loaded", "units", 3)
	log.Debug("dropped below info level")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"scores loaded"`)
	assert.Contains(t, string(data), `"subject":"s1"`)
	assert.Contains(t, string(data), `"units":3`)
	assert.NotContains(t, string(data), "dropped below info level")
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Error("nothing happens", "k", "v")
	log.With("a", 1).Warn("still nothing")
}
