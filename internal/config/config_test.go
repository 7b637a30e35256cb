package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DataPath)
	assert.NotEmpty(t, cfg.AgentDBPath)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().ListenAddr, cfg.ListenAddr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votelens.yaml")
	doc := "listen_addr: \":9090\"\ndata_path: /srv/data/secciones.geojson\ngemini_model: gemini-2.5-pro\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "/srv/data/secciones.geojson", cfg.DataPath)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	// Unset keys keep their defaults.
	assert.Equal(t, Default().AgentDBPath, cfg.AgentDBPath)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votelens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VOTELENS_ADDR", ":7070")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votelens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":9090\"\n"), 0644))
	t.Setenv("VOTELENS_ADDR", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
}
