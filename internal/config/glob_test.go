package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], []byte("test"), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return paths
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "a.log", "b.log", "c.txt")

	files, err := ExpandGlobs([]string{filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	files, err = ExpandGlobs([]string{paths[0], filepath.Join(dir, "*.log")})
	if err != nil {
		t.Fatalf("ExpandGlobs() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
}

func TestExpandGlobsNoMatch(t *testing.T) {
	dir := t.TempDir()

	_, err := ExpandGlobs([]string{filepath.Join(dir, "*.missing")})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput for unmatched glob, got %v", err)
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "Linux_2k.log", "HDFS_2k.log", "notes.txt")

	got, err := ResolveInput(paths[0])
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if got != paths[0] {
		t.Errorf("ResolveInput() = %q, want %q", got, paths[0])
	}

	got, err = ResolveInput(filepath.Join(dir, "*.txt"))
	if err != nil {
		t.Fatalf("ResolveInput() error = %v", err)
	}
	if got != paths[2] {
		t.Errorf("ResolveInput() = %q, want %q", got, paths[2])
	}
}

func TestResolveInputErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.log", "b.log")

	if _, err := ResolveInput(filepath.Join(dir, "*.log")); !errors.Is(err, ErrAmbiguousInput) {
		t.Errorf("expected ErrAmbiguousInput, got %v", err)
	}
	if _, err := ResolveInput(""); !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
	if _, err := ResolveInput(filepath.Join(dir, "missing.log")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
