package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes one discovered report export.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds report exports on disk.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery rooted at basePath. Relative
// directories passed to the Find methods resolve against it.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// reportExtensions are the exporter output formats we ingest.
var reportExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// FindReportFiles returns every report export in dir, newest first.
// Office temp files ("~$...") are ignored.
func (d *Discovery) FindReportFiles(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var found []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !reportExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ModTime.After(found[j].ModTime)
	})
	return found, nil
}

// FindByName returns the report export with the given file name inside
// dir, guarding against path traversal in name.
func (d *Discovery) FindByName(dir, name string) (FileInfo, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return FileInfo{}, fmt.Errorf("invalid report file name: %q", name)
	}
	if !reportExtensions[strings.ToLower(filepath.Ext(name))] {
		return FileInfo{}, fmt.Errorf("unsupported report file type: %q", name)
	}

	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}
	path := filepath.Join(fullPath, name)

	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat report file %s: %w", name, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("report file %s is a directory", name)
	}

	return FileInfo{
		Path:    path,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
