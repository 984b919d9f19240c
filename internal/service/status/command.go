package status

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/repository/marker"
	"github.com/oshokin/paper-updater/internal/service/common"
	"github.com/oshokin/paper-updater/internal/ui"
)

// Options contains inputs for the status entry point.
type Options struct {
	// ConfigPath is the optional path to settings YAML file.
	ConfigPath string
	// LogLevel overrides the level from the settings file when set.
	LogLevel string
	// Out receives the report.
	Out io.Writer
	// NoColor disables styling even on a terminal.
	NoColor bool
}

// Report is the state of the local install compared with the registry.
type Report struct {
	// Version is the tracked Minecraft version.
	Version string
	// Recorded is the raw marker content; empty when HasRecorded is false.
	Recorded string
	// HasRecorded tells whether a marker exists.
	HasRecorded bool
	// Newest is the newest build in the registry.
	Newest int
	// UpdateAvailable is true when a run would install Newest.
	UpdateAvailable bool
	// Artifact is the path of the installed jar.
	Artifact string
}

// Run prints the status report.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "paper-status")

	cfg, err := common.LoadSettings(ctx, opts.ConfigPath, opts.LogLevel)
	if err != nil {
		return err
	}

	report, err := Collect(ctx, cfg)
	if err != nil {
		return err
	}

	printer := ui.NewPrinter(opts.Out)
	if opts.NoColor {
		printer = ui.NewPlainPrinter(opts.Out)
	}

	return printer.Report(report.Fields())
}

// Collect builds the report for the files and registry named in cfg. It never
// writes: a missing version file reports the default version.
func Collect(ctx context.Context, cfg *config.Config) (*Report, error) {
	target, _, err := common.NewTargetStore(cfg).Peek(ctx)
	if err != nil {
		return nil, fmt.Errorf("load target version: %w", err)
	}

	recorded, found, err := common.NewMarkerStore(cfg).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read build marker: %w", err)
	}

	project, err := common.NewRegistry(cfg).FetchBuilds(ctx, target.MinecraftVersion)
	if err != nil {
		return nil, fmt.Errorf("fetch builds: %w", err)
	}

	latest, err := project.Latest()
	if err != nil {
		return nil, fmt.Errorf("select newest build: %w", err)
	}

	return &Report{
		Version:         target.MinecraftVersion,
		Recorded:        recorded,
		HasRecorded:     found,
		Newest:          latest.Number,
		UpdateAvailable: !found || !marker.Matches(recorded, latest.Number, cfg.MarkerComparison),
		Artifact:        common.NewArtifactStore(cfg).Path(),
	}, nil
}

// Fields renders the report as label-value lines.
func (r *Report) Fields() []ui.Field {
	recorded := "none"
	if r.HasRecorded {
		recorded = strconv.Quote(r.Recorded)
	}

	available := "no"
	if r.UpdateAvailable {
		available = "yes"
	}

	return []ui.Field{
		{Label: "Minecraft version", Value: r.Version},
		{Label: "Installed build", Value: recorded},
		{Label: "Newest build", Value: strconv.Itoa(r.Newest)},
		{Label: "Update available", Value: available},
		{Label: "Artifact", Value: r.Artifact},
	}
}
