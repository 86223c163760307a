package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configpkg "github.com/alexiusacademia/geocons/internal/config"
)

// setup writes a config that keeps the catalogue and plots in a temp dir
// and returns the dir and the config path.
func setup(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "geocons.yaml")
	content := "log_level: warn\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"database:\n  path: " + filepath.Join(dir, "runs.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return dir, path
}

func execute(t *testing.T, config string, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--config", config}, args...))
	return rootCmd.Execute()
}

func fixture(parts ...string) string {
	return filepath.Join(append([]string{"..", "internal"}, parts...)...)
}

func TestCommands(t *testing.T) {
	dir, config := setup(t)

	targets := filepath.Join(dir, "targets.yaml")
	require.NoError(t, os.WriteFile(targets, []byte(`targets:
  - name: Soil_1_1
    area: 40
    bounding_box: "min: (0; -8; 0) max: (10; -4; 0)"
  - name: Soil_2_1
    area: 40
    bbox: {xmin: 0, ymin: -4, xmax: 10, ymax: 0}
`), 0644))

	tests := []struct {
		name string
		args []string
		file string
	}{
		{"settlement", []string{"consolidation", "settlement", "-H", "20", "-q", "20", "--gamma", "6", "--cc", "1.2", "--e0", "2"}, ""},
		{"degree", []string{"consolidation", "degree", "--times", "1,10,100"}, ""},
		{"curve", []string{"consolidation", "curve", "--ultimate", "1.66", "--fe", fixture("results", "testdata", "curve.csv"), "--save", "Point A", "-o", "curve.svg"}, "out/curve.svg"},
		{"polygons", []string{"mesh", "polygons", fixture("meshinfo", "testdata", "data.meshinfo"), "--at", "5,-6"}, ""},
		{"polygons width", []string{"mesh", "polygons", fixture("meshinfo", "testdata", "data.meshinfo"), "--width-at", "-2"}, ""},
		{"match", []string{"mesh", "match", fixture("meshinfo", "testdata", "data.meshinfo"), "-t", targets, "-o", "matched.png"}, "out/matched.png"},
		{"check", []string{"model", "check", fixture("model", "testdata", "model.yaml")}, ""},
		{"profile", []string{"model", "profile", fixture("model", "testdata", "model.yaml"), "--yaml", "slices.yaml"}, "out/slices.yaml"},
		{"stages", []string{"model", "stages", "--model", fixture("model", "testdata", "model.yaml")}, ""},
		{"anchors", []string{"results", "anchors", fixture("results", "testdata", "anchors.csv")}, ""},
		{"cut", []string{"results", "settlement", fixture("results", "testdata", "nodes.csv"), "--xmin", "0", "--xmax", "10", "--y", "0"}, ""},
		{"runs list", []string{"runs", "list"}, ""},
		{"runs plot", []string{"runs", "plot", "-o", "runs.png"}, "out/runs.png"},
		{"config init", []string{"config", "init", filepath.Join(dir, "out", "init.yaml")}, "out/init.yaml"},
		{"version", []string{"version"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, execute(t, config, tt.args...))
			if tt.file != "" {
				info, err := os.Stat(filepath.Join(dir, tt.file))
				require.NoError(t, err)
				assert.Greater(t, info.Size(), int64(0))
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	dir, config := setup(t)

	assert.Error(t, execute(t, config, "model", "check", filepath.Join(dir, "missing.yaml")))
	assert.Error(t, execute(t, config, "runs", "delete", "nosuchrun"))
	assert.Error(t, execute(t, filepath.Join(dir, "missing-config.yaml"), "version"))
	assert.Error(t, execute(t, config, "config", "init", config))
}

func TestConfigInitWritesEffectiveConfig(t *testing.T) {
	dir, config := setup(t)
	path := filepath.Join(dir, "written.yaml")
	t.Cleanup(func() { dbPath = "" })

	require.NoError(t, execute(t, config, "--db", filepath.Join(dir, "other.db"), "config", "init", path))

	loaded, _, err := configpkg.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", loaded.LogLevel)
	assert.Equal(t, filepath.Join(dir, "other.db"), loaded.Database.Path)
	assert.Equal(t, configpkg.DefaultConfig().Drain, loaded.Drain)
}
