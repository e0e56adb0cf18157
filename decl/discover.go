package decl

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches declaration files anywhere under the working
// directory.
const DefaultPattern = "**/*.enum.yaml"

// declGlob matches declaration files directly under a directory tree.
const declGlob = "**/*.enum.{yaml,yml}"

// IsDeclPath reports whether path names a declaration file by suffix.
func IsDeclPath(path string) bool {
	return strings.HasSuffix(path, ".enum.yaml") || strings.HasSuffix(path, ".enum.yml")
}

// Discover expands patterns into declaration file paths. Patterns may be
// doublestar globs ("decls/**/*.enum.yaml"), directories (searched
// recursively for declaration files) or plain file paths (passed through
// after an existence check). No patterns means DefaultPattern. Results
// are deduplicated and sorted.
func Discover(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	var found []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				found = append(found, p)
			}
		}
	}

	slices.Sort(found)
	return found, nil
}

// resolvePattern expands a single pattern to declaration files.
func resolvePattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, err
		}
		// An explicitly named file is taken at its word; a directory is
		// searched for declaration files.
		if !info.IsDir() {
			return []string{pattern}, nil
		}
		return globFiles(filepath.Join(pattern, declGlob))
	}

	files, err := globFiles(pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no declaration files match")
	}
	return files, nil
}

// globFiles expands a doublestar pattern and keeps regular declaration
// files.
func globFiles(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue // skip paths that can't be stat'd
		}
		if !info.IsDir() && IsDeclPath(match) {
			files = append(files, match)
		}
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
