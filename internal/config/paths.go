package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains file system layout configuration. UploadsDir,
// ReportsDir and LogsDir are resolved relative to BaseDir unless given
// as absolute paths.
type PathsConfig struct {
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	UploadsDir string `yaml:"uploads_dir" envconfig:"UPLOADS_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Paths holds fully resolved absolute directories.
type Paths struct {
	BaseDir    string
	UploadsDir string
	ReportsDir string
	LogsDir    string
}

// Resolve turns the configured layout into absolute paths.
func (p PathsConfig) Resolve() (*Paths, error) {
	base, err := filepath.Abs(p.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir %s: %w", p.BaseDir, err)
	}
	return &Paths{
		BaseDir:    base,
		UploadsDir: resolveUnder(base, p.UploadsDir),
		ReportsDir: resolveUnder(base, p.ReportsDir),
		LogsDir:    resolveUnder(base, p.LogsDir),
	}, nil
}

func resolveUnder(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates every resolved directory that does not yet
// exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.BaseDir, p.UploadsDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// UploadPath returns the absolute path of a file inside the uploads dir.
func (p *Paths) UploadPath(name string) string {
	return filepath.Join(p.UploadsDir, name)
}

// ReportPath returns the absolute path of a file inside the reports dir.
func (p *Paths) ReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// LogPath returns the absolute path of a file inside the logs dir.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
