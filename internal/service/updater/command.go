package updater

import (
	"context"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/common"
)

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to settings YAML file.
	ConfigPath string
	// LogLevel overrides the level from the settings file when set.
	LogLevel string
}

// Run executes one update pass and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) (Result, error) {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "paper-updater")

	cfg, err := common.LoadSettings(ctx, opts.ConfigPath, opts.LogLevel)
	if err != nil {
		return Result{}, err
	}

	lock, err := AcquireLock(ctx, cfg.LockFile)
	if err != nil {
		logger.ErrorKV(ctx, "Updater run failed", "error", err)
		return Result{}, err
	}

	defer lock.Release(ctx)

	result, err := NewFromConfig(cfg).Run(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Updater run failed", "error", err)
		return result, err
	}

	logger.InfoKV(ctx, "Updater completed", "result", result.String())

	return result, nil
}

// NewFromConfig wires an Updater to the files and registry named in the settings.
func NewFromConfig(cfg *config.Config) *Updater {
	return New(Dependencies{
		Target:     common.NewTargetStore(cfg),
		Registry:   common.NewRegistry(cfg),
		Marker:     common.NewMarkerStore(cfg),
		Artifact:   common.NewArtifactStore(cfg),
		Comparison: cfg.MarkerComparison,
	})
}
