package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5000, cfg.Parser.DetectScanLimit)
	assert.Equal(t, 50, cfg.Parser.UnitNameScanLimit)
	assert.Equal(t, 4, cfg.Parser.Workers)
	assert.NoError(t, cfg.validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
parser:
  detect_scan_limit: 100
  unit_name_scan_limit: 10
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Parser.DetectScanLimit)
	assert.Equal(t, 10, cfg.Parser.UnitNameScanLimit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, 4, cfg.Parser.Workers)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("LAVA_SERVER_PORT", "7070")
	t.Setenv("LAVA_PARSER_DETECT_SCAN_LIMIT", "250")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 250, cfg.Parser.DetectScanLimit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"LAVA_SERVER_PORT": "99999"}},
		{"zero scan limit", map[string]string{"LAVA_PARSER_DETECT_SCAN_LIMIT": "0"}},
		{"zero workers", map[string]string{"LAVA_PARSER_WORKERS": "0"}},
		{"bad logging output", map[string]string{"LAVA_LOGGING_OUTPUT": "syslog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPathsResolve(t *testing.T) {
	cfg := PathsConfig{
		BaseDir:    t.TempDir(),
		UploadsDir: "uploads",
		ReportsDir: "reports",
		LogsDir:    "logs",
	}

	paths, err := cfg.Resolve()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.BaseDir, "uploads"), paths.UploadsDir)
	assert.Equal(t, filepath.Join(paths.BaseDir, "reports"), paths.ReportsDir)

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.UploadsDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	assert.Equal(t, filepath.Join(paths.UploadsDir, "a.csv"), paths.UploadPath("a.csv"))
	assert.Equal(t, filepath.Join(paths.ReportsDir, "b.csv"), paths.ReportPath("b.csv"))
}

func TestPathsResolveAbsoluteOverride(t *testing.T) {
	abs := t.TempDir()
	cfg := PathsConfig{BaseDir: t.TempDir(), UploadsDir: abs, ReportsDir: "r", LogsDir: "l"}

	paths, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, abs, paths.UploadsDir)
}
