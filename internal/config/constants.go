// Package config holds filename conventions and the optional on-disk
// project settings for the analyzer.
package config

// SourceFileExt is the canonical extension for TIP source files.
const SourceFileExt = ".tip"

// SourceFileExtensions are all extensions the CLI will treat as TIP
// source when walking a directory.
var SourceFileExtensions = []string{".tip"}

// HasSourceExt reports whether path ends with a recognized TIP extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized TIP extension from name, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}
