package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTree(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	files := map[string]string{
		"b.py":              "x = 1",
		"a.py":              "y = 2",
		"notes.txt":         "This is a text file",
		"subdir/c.py":       "z = 3",
		"vendor/lib/d.py":   "w = 4",
		"test_generated.py": "v = 5",
	}

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		err := os.MkdirAll(filepath.Dir(fullPath), 0o755)
		require.NoError(t, err)
		err = os.WriteFile(fullPath, []byte(content), 0o644)
		require.NoError(t, err)
	}
	return tempDir
}

func paths(files []FileInfo) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestExpandDirectory(t *testing.T) {
	t.Parallel()
	dir := createTree(t)

	files, err := New([]string{".py"}).Expand(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "test_generated.py"),
	}, paths(files))
	for _, f := range files {
		assert.Greater(t, f.Size, int64(0), "File size should be greater than 0")
	}
}

func TestExpandRecursive(t *testing.T) {
	t.Parallel()
	dir := createTree(t)

	files, err := New([]string{".py"}, WithRecursive(true)).Expand(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "subdir", "c.py"),
		filepath.Join(dir, "test_generated.py"),
		filepath.Join(dir, "vendor", "lib", "d.py"),
	}, paths(files))
}

func TestExpandIgnore(t *testing.T) {
	t.Parallel()
	dir := createTree(t)

	s := New([]string{".py"}, WithRecursive(true), WithIgnore("vendor", "test_*.py"))
	files, err := s.Expand(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.py"),
		filepath.Join(dir, "b.py"),
		filepath.Join(dir, "subdir", "c.py"),
	}, paths(files))
}

func TestExpandFile(t *testing.T) {
	t.Parallel()
	dir := createTree(t)
	s := New([]string{".py"})

	files, err := s.Expand(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.py")}, paths(files))

	_, err = s.Expand(filepath.Join(dir, "notes.txt"))
	assert.True(t, errors.Is(err, ErrNotTarget))

	_, err = s.Expand(filepath.Join(dir, "missing.py"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIsTarget(t *testing.T) {
	t.Parallel()
	assert.True(t, New([]string{".py"}).IsTarget("a/b.py"))
	assert.False(t, New([]string{".py"}).IsTarget("a/b.pyc"))
	assert.True(t, New(nil).IsTarget("anything"))
}
