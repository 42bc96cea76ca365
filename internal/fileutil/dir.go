package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NeekChaw/mcp-server-okppt/spec"
)

// ListDirectory lists entry names in path (default "."), sorted
// lexicographically. Pattern is an optional glob filter (filepath.Match).
func ListDirectory(path, pattern string) ([]string, error) {
	dir := path
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", spec.ErrFileNotFound, dir)
		}
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if pattern != "" {
			matched, err := filepath.Match(pattern, name)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// ListFilesWithExtension returns regular-file names in dir carrying one of the
// given extensions (case-insensitive, leading dot included), sorted
// lexicographically. Non-recursive.
func ListFilesWithExtension(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", spec.ErrFileNotFound, dir)
		}
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		for _, ext := range exts {
			if strings.HasSuffix(lower, strings.ToLower(ext)) {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// EnsureParentDir creates the parent directories of path when missing.
// It is a deliberate, always-performed repair step, not a retry branch.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
