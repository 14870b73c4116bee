package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	got, err := ReadAll(strings.NewReader("first\n\nthird\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "", "third"}, got.Lines)
	assert.Equal(t, 0, got.Invalid)
}

func TestReadAllInvalidUTF8(t *testing.T) {
	got, err := ReadAll(strings.NewReader("a\n\xff\xfe\nb"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "", "b"}, got.Lines)
	assert.Equal(t, 1, got.Invalid)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got.Lines)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.log"))
	assert.True(t, os.IsNotExist(err), "error = %v", err)
}
