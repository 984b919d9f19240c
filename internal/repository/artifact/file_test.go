package artifact

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_Remove_Missing is a no-op without an error.
func TestFileRepository_Remove_Missing(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "paper.jar"))

	removed, err := repo.Remove(context.Background())
	require.NoError(t, err)
	require.False(t, removed)
}

// TestFileRepository_Remove_Existing deletes the file.
func TestFileRepository_Remove_Existing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "paper.jar")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	removed, err := NewFileRepository(path).Remove(context.Background())
	require.NoError(t, err)
	require.True(t, removed)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileRepository_Remove_Failure surfaces errors other than absence.
func TestFileRepository_Remove_Failure(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("directory removal semantics differ on windows")
	}

	// A non-empty directory at the artifact path cannot be removed with os.Remove.
	path := filepath.Join(t.TempDir(), "paper.jar")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "nested"), 0o750))

	removed, err := NewFileRepository(path).Remove(context.Background())
	require.ErrorIs(t, err, ErrRemove)
	require.False(t, removed)
}

// TestFileRepository_Install writes a fresh file and overwrites an existing one.
func TestFileRepository_Install(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.jar")
	repo := NewFileRepository(path)

	require.NoError(t, repo.Install(context.Background(), []byte("build-41")))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("build-41"), contents)

	require.NoError(t, repo.Install(context.Background(), []byte("build-42")))

	contents, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("build-42"), contents)
	require.Equal(t, path, repo.Path())

	// Only the jar is left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

// TestFileRepository_Install_Failure leaves no empty jar behind when nothing was installed.
func TestFileRepository_Install_Failure(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("directory open semantics differ on windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "paper.jar")

	// A directory where the staged file goes makes the swap fail before it starts.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".paper.jar.new"), 0o750))

	err := NewFileRepository(path).Install(context.Background(), []byte("build-42"))
	require.Error(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}
