// Package modules discovers TIP source files on disk: a single file, or
// every file with the recognized source extension under a directory.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/chopinballadeno4/static-program-analysis/internal/config"
)

// Source is one loaded TIP source file.
type Source struct {
	Path string
	Text string
}

// Load resolves path into one or more Sources: path itself if it names a
// file, or every recognized source file directly under it if it names a
// directory (sorted for deterministic run order).
func Load(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return loadFile(path)
	}
	return loadDir(path)
}

func loadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []Source{{Path: path, Text: string(data)}}, nil
}

func loadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !config.HasSourceExt(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", config.SourceFileExt, dir)
	}

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		full := filepath.Join(dir, name)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Path: full, Text: string(data)})
	}
	return sources, nil
}
