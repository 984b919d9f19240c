package target

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileRepository_CreatesDefault verifies a missing file is created with the default version.
func TestFileRepository_CreatesDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	repo := NewFileRepository(path)

	target, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, DefaultMinecraftVersion, target.MinecraftVersion)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"minecraftVersion": "1.20.1"}`, string(contents))

	// Second load reads the file it just wrote.
	again, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, target, again)
}

// TestFileRepository_ReadsExisting returns the stored version untouched.
func TestFileRepository_ReadsExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"minecraftVersion":"1.21.4","extra":true}`), 0o600))

	target, err := NewFileRepository(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1.21.4", target.MinecraftVersion)
}

// TestFileRepository_ParseErrors covers invalid JSON and a missing version field.
func TestFileRepository_ParseErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"invalid json":  `{"minecraftVersion":`,
		"missing field": `{"version":"1.20.1"}`,
		"blank field":   `{"minecraftVersion":"  "}`,
		"wrong type":    `{"minecraftVersion":1.2}`,
	}

	for name, contents := range cases {
		contents := contents
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

			target, err := NewFileRepository(path).Load(context.Background())
			require.ErrorIs(t, err, ErrParse)
			require.Nil(t, target)
		})
	}
}

// TestFileRepository_Peek reads without creating the file.
func TestFileRepository_Peek(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	repo := NewFileRepository(path)

	target, found, err := repo.Peek(context.Background())
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, DefaultMinecraftVersion, target.MinecraftVersion)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(`{"minecraftVersion":"1.21"}`), 0o600))

	target, found, err = repo.Peek(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "1.21", target.MinecraftVersion)

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, _, err = repo.Peek(context.Background())
	require.ErrorIs(t, err, ErrParse)
}
