package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolver(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "xlsx")
	require.NoError(t, os.MkdirAll(filepath.Join(base, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "1.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "sub", "2.xlsx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.xlsx"), []byte("x"), 0o644))

	r := NewFileResolver(base)

	t.Run("default name", func(t *testing.T) {
		path, err := r.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "1.xlsx"), path)
	})

	t.Run("nested name", func(t *testing.T) {
		path, err := r.Resolve("sub/2.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "sub", "2.xlsx"), path)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := r.Resolve("missing.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("path through a regular file", func(t *testing.T) {
		_, err := r.Resolve("1.xlsx/x")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("name with a NUL byte", func(t *testing.T) {
		_, err := r.Resolve("a\x00b.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("escaping the base directory", func(t *testing.T) {
		_, err := r.Resolve("../secret.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)

		_, err = r.Resolve("sub/../../secret.xlsx")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("dot segments that stay inside", func(t *testing.T) {
		path, err := r.Resolve("sub/../1.xlsx")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "1.xlsx"), path)
	})
}
