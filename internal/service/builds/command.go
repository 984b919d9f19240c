package builds

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/oshokin/paper-updater/internal/domain/paper"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/service/common"
	"github.com/oshokin/paper-updater/internal/ui"
)

// Options contains inputs for the build listing entry point.
type Options struct {
	// ConfigPath is the optional path to settings YAML file.
	ConfigPath string
	// LogLevel overrides the level from the settings file when set.
	LogLevel string
	// Version lists builds for this version instead of the tracked one.
	Version string
	// Out receives the table.
	Out io.Writer
	// NoColor disables styling even on a terminal.
	NoColor bool
}

// headers of the listing table.
//
//nolint:gochecknoglobals // Read-only column names.
var headers = []string{"BUILD", "TIME", "CHANNEL", "PROMOTED", "FILE"}

// Run prints every build published for the version, newest last.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "paper-builds")

	cfg, err := common.LoadSettings(ctx, opts.ConfigPath, opts.LogLevel)
	if err != nil {
		return err
	}

	version := opts.Version
	if version == "" {
		target, err := common.NewTargetStore(cfg).Load(ctx)
		if err != nil {
			return fmt.Errorf("load target version: %w", err)
		}

		version = target.MinecraftVersion
	}

	logger.DebugKV(ctx, "Fetching the build list", "version", version)

	project, err := common.NewRegistry(cfg).FetchBuilds(ctx, version)
	if err != nil {
		return fmt.Errorf("fetch builds: %w", err)
	}

	printer := ui.NewPrinter(opts.Out)
	if opts.NoColor {
		printer = ui.NewPlainPrinter(opts.Out)
	}

	return printer.Table(headers, Rows(project))
}

// Rows turns the listing into table rows in registry order.
func Rows(project *paper.Project) [][]string {
	rows := make([][]string, 0, len(project.Builds))

	for i := range project.Builds {
		build := &project.Builds[i]

		fileName := "-"
		if application, err := build.Application(); err == nil {
			fileName = application.Name
		}

		rows = append(rows, []string{
			build.ID(),
			build.Time,
			build.Channel,
			strconv.FormatBool(build.Promoted),
			fileName,
		})
	}

	return rows
}
