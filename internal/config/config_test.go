package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/geocons/internal/consolidation"
)

// isolate points every search location at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1e-4, cfg.Matching.AreaTolerance)
	assert.Equal(t, 1e-3, cfg.Matching.VertexTolerance)
	assert.Equal(t, filepath.Join(dir, "home", ".local", "share", "geocons", "runs.db"), cfg.Database.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "log_level: debug\nmatching:\n  area_tolerance: 0.01\n")

	cfg, got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.01, cfg.Matching.AreaTolerance)
	assert.Equal(t, 1e-3, cfg.Matching.VertexTolerance)
	assert.Equal(t, DefaultConfig().Drain, cfg.Drain)

	opts := cfg.Matching.Options()
	assert.Equal(t, 0.01, opts.AreaTolerance)
}

func TestFindConfigPathOrder(t *testing.T) {
	dir := isolate(t)

	home := filepath.Join(dir, "home", ".config", "geocons", "config.yaml")
	writeFile(t, home, "log_level: warn\n")
	assert.Equal(t, home, FindConfigPath())

	xdg := filepath.Join(dir, "xdg", "geocons", "config.yaml")
	writeFile(t, xdg, "log_level: warn\n")
	assert.Equal(t, xdg, FindConfigPath())

	writeFile(t, filepath.Join(dir, ConfigFileName), "log_level: warn\n")
	found := FindConfigPath()
	assert.Equal(t, ConfigFileName, filepath.Base(found))
	assert.True(t, filepath.IsAbs(found))

	env := filepath.Join(dir, "env.yaml")
	writeFile(t, env, "log_level: error\n")
	t.Setenv(EnvConfigPath, env)
	assert.Equal(t, env, FindConfigPath())

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := isolate(t)

	tests := map[string]string{
		"log level":  "log_level: loud\n",
		"tolerance":  "matching:\n  vertex_tolerance: -1\n",
		"drain":      "drain:\n  ch: 1\n  drain_diameter: 1\n  influence_diameter: 0.5\n",
		"bad yaml":   "log_level: [\n",
		"wrong type": "matching: 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			writeFile(t, path, content)
			_, _, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, _, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Drain = consolidation.Drain{Ch: 2, Diameter: 0.05, InfluenceDiameter: 1.5}
	require.NoError(t, cfg.Save(path))

	loaded, _, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
