package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.hcl"))
	touch(t, filepath.Join(root, "nested", "a.hcl"))
	touch(t, filepath.Join(root, "nested", "c.yaml"))
	touch(t, filepath.Join(root, "notes.txt"))

	got, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "a.hcl"),
	}, got)

	got, err = FindFilesByExtension(root, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	single := filepath.Join(root, "b.hcl")
	got, err = FindFilesByExtension(single, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{single}, got)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".hcl")
	require.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFilesByExtension(t.TempDir()) })
}

func TestEnsureParentDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c.txt")

	require.NoError(t, EnsureParentDir(target))
	require.NoError(t, EnsureParentDir(target), "must be idempotent")

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, EnsureParentDir("relative.txt"))
}
