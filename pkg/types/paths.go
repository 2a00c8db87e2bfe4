package types

import (
	"path/filepath"
	"strings"
)

// Base returns the final path component, or "" when the path has none
// ("", "/", "." and "..").
func Base(path string) string {
	base := filepath.Base(path)
	switch base {
	case ".", "..", string(filepath.Separator):
		return ""
	}
	return base
}

// Dir returns the parent directory of path.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Ext returns the extension of the final path component without the
// leading dot. A leading dot alone does not start an extension, so
// ".bashrc" has none and "archive.tar.gz" yields "gz".
func Ext(path string) string {
	base := Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return ""
	}
	return base[i+1:]
}

// Stem returns the final path component with its extension removed.
func Stem(path string) string {
	base := Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 {
		return base
	}
	return base[:i]
}

// TrimExt returns the full path with the extension of its final component
// removed. Paths without an extension are returned unchanged.
func TrimExt(path string) string {
	base := Base(path)
	i := strings.LastIndexByte(base, '.')
	if i <= 0 || !strings.HasSuffix(path, base) {
		return path
	}
	return path[:len(path)-len(base)+i]
}

// IsHidden reports whether the final path component starts with a dot.
func IsHidden(path string) bool {
	return strings.HasPrefix(Base(path), ".")
}
