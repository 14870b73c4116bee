package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrNoInput is returned when no input file is given or a pattern
	// matches nothing.
	ErrNoInput = errors.New("no input file")

	// ErrAmbiguousInput is returned when more than one input file is
	// given where exactly one is needed.
	ErrAmbiguousInput = errors.New("more than one input file")
)

// ExpandGlobs expands file paths and glob patterns into a sorted unique list.
func ExpandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no file patterns provided", ErrNoInput)
	}

	files := make([]string, 0)
	seen := make(map[string]struct{})

	for _, pattern := range patterns {
		if hasGlobMeta(pattern) {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no matches for pattern %q", ErrNoInput, pattern)
			}
			for _, match := range matches {
				if _, ok := seen[match]; ok {
					continue
				}
				seen[match] = struct{}{}
				files = append(files, match)
			}
			continue
		}

		if _, err := os.Stat(pattern); err != nil {
			return nil, err
		}
		if _, ok := seen[pattern]; ok {
			continue
		}
		seen[pattern] = struct{}{}
		files = append(files, pattern)
	}

	sort.Strings(files)
	return files, nil
}

// ResolveInput expands a path or glob that must name exactly one file.
func ResolveInput(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", ErrNoInput
	}

	files, err := ExpandGlobs([]string{pattern})
	if err != nil {
		return "", err
	}
	if len(files) > 1 {
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguousInput, pattern, strings.Join(files, ", "))
	}
	return files[0], nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
