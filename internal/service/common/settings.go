//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/registry"
	"github.com/oshokin/paper-updater/internal/repository/artifact"
	"github.com/oshokin/paper-updater/internal/repository/marker"
	"github.com/oshokin/paper-updater/internal/repository/target"
)

// errUnknownLogLevel is returned when a log level cannot be parsed.
var errUnknownLogLevel = errors.New("unknown log level")

// LoadSettings reads the settings file, falling back to defaults when it is missing,
// and applies the log level. A non-empty logLevel overrides the one from the file.
func LoadSettings(ctx context.Context, path, logLevel string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	cfg, found, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(logLevel) != "" {
		cfg.LogLevel = logLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	logger.SetLevel(level)

	if !found {
		logger.DebugKV(ctx, "Settings file not found, using defaults", "path", path)
	}

	return cfg, nil
}

// NewRegistry builds a registry client from the settings.
func NewRegistry(cfg *config.Config) *registry.Client {
	return registry.New(
		cfg.RegistryURL,
		cfg.Project,
		registry.WithTimeout(cfg.Timeout),
		registry.WithDownloadTimeout(cfg.DownloadTimeout),
	)
}

// NewTargetStore opens the version file named in the settings.
func NewTargetStore(cfg *config.Config) *target.FileRepository {
	return target.NewFileRepository(cfg.VersionFile)
}

// NewMarkerStore opens the marker file named in the settings.
func NewMarkerStore(cfg *config.Config) *marker.FileRepository {
	return marker.NewFileRepository(cfg.MarkerFile)
}

// NewArtifactStore opens the jar named in the settings.
func NewArtifactStore(cfg *config.Config) *artifact.FileRepository {
	return artifact.NewFileRepository(cfg.ArtifactFile)
}
