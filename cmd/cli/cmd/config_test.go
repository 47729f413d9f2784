package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sudheer128/cloud4india-sub003/internal/config"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, configInitCmd.RunE(configInitCmd, []string{path}))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Upstream.BaseURL, cfg.Upstream.BaseURL)
	assert.Equal(t, config.Default().Sync.TTLSeconds, cfg.Sync.TTLSeconds)
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	err := configInitCmd.RunE(configInitCmd, []string{path})
	assert.Error(t, err)
}
