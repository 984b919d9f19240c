package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaults and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty settings get defaults.
	settings := new(Config)

	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultRegistryURL, settings.RegistryURL)
	require.Equal(t, DefaultProject, settings.Project)
	require.Equal(t, DefaultVersionFilename, settings.VersionFile)
	require.Equal(t, DefaultMarkerFilename, settings.MarkerFile)
	require.Equal(t, DefaultArtifactFilename, settings.ArtifactFile)
	require.Equal(t, DefaultLockFilename, settings.LockFile)
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultDownloadTimeout, settings.DownloadTimeout)
	require.Equal(t, ComparisonString, settings.MarkerComparison)
	require.Equal(t, DefaultLogLevel, settings.LogLevel)

	// Bad registry URL.
	settings = &Config{
		RegistryURL: "not a url",
	}

	require.Error(t, Validate(settings))

	// Unknown comparison mode.
	settings = &Config{
		MarkerComparison: "semantic",
	}

	require.ErrorIs(t, Validate(settings), errUnknownComparison)

	// Blank project.
	settings = &Config{
		Project: "   ",
	}

	require.ErrorIs(t, Validate(settings), errProjectRequired)

	require.ErrorIs(t, Validate(nil), errConfigIsNotSet)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		RegistryURL:      "https://registry.local/v2",
		ArtifactFile:     "server.jar",
		Timeout:          2 * time.Second,
		MarkerComparison: ComparisonNumeric,
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.RegistryURL, loaded.RegistryURL)
	require.Equal(t, settings.ArtifactFile, loaded.ArtifactFile)
	require.Equal(t, settings.Timeout, loaded.Timeout)
	require.Equal(t, ComparisonNumeric, loaded.MarkerComparison)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadOrDefault_MissingFile returns defaults without creating anything.
func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, found, err := LoadOrDefault(path)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoadOrDefault_InvalidFile surfaces parse errors instead of hiding them behind defaults.
func TestLoadOrDefault_InvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [not-a-duration"), DefaultFilePermissions))

	cfg, found, err := LoadOrDefault(path)
	require.Error(t, err)
	require.False(t, found)
	require.Nil(t, cfg)
}
