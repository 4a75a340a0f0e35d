package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "kiln", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestLoadConfigParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiln.toml")
	data := `
title = "demo"
width = 640
height = 480
vsync = true
clear_color = [0.1, 0.2, 0.3, 1.0]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, cfg.ClearColor)
}

func TestLoadConfigPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiln.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "partial"`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "partial", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiln.toml")
	require.NoError(t, os.WriteFile(path, []byte(`width = "oops`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
