package updater

import (
	"context"
	"fmt"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/paper"
	"github.com/oshokin/paper-updater/internal/logger"
	"github.com/oshokin/paper-updater/internal/repository/marker"
)

// TargetStore provides the version to track.
type TargetStore interface {
	Load(ctx context.Context) (*paper.Target, error)
}

// Registry lists builds and serves their files.
type Registry interface {
	FetchBuilds(ctx context.Context, version string) (*paper.Project, error)
	Download(ctx context.Context, version string, build int, fileName string) ([]byte, error)
}

// MarkerStore persists the last installed build.
type MarkerStore interface {
	Read(ctx context.Context) (string, bool, error)
	Write(ctx context.Context, buildID string) error
}

// ArtifactStore owns the installed jar.
type ArtifactStore interface {
	Remove(ctx context.Context) (bool, error)
	Install(ctx context.Context, data []byte) error
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	// OutcomeFailed means the run stopped on an error.
	OutcomeFailed Outcome = iota
	// OutcomeNoChange means the recorded build is already the newest one.
	OutcomeNoChange
	// OutcomeUpdated means a new build was installed.
	OutcomeUpdated
)

// String returns a human-readable outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoChange:
		return "no change"
	case OutcomeUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// Result describes how a run ended.
type Result struct {
	// Outcome is the terminal state.
	Outcome Outcome
	// Build is the installed build number when Outcome is OutcomeUpdated,
	// and the current build when Outcome is OutcomeNoChange.
	Build int
}

// String renders the result for status lines.
func (r Result) String() string {
	switch r.Outcome {
	case OutcomeUpdated, OutcomeNoChange:
		return fmt.Sprintf("%s (build %d)", r.Outcome, r.Build)
	default:
		return r.Outcome.String()
	}
}

// Dependencies are the collaborators of an Updater.
type Dependencies struct {
	Target   TargetStore
	Registry Registry
	Marker   MarkerStore
	Artifact ArtifactStore
	// Comparison is the marker comparison mode, config.ComparisonString by default.
	Comparison string
}

// Updater runs the check-and-install sequence.
type Updater struct {
	deps Dependencies
}

// New creates an Updater from its collaborators.
func New(deps Dependencies) *Updater {
	if deps.Comparison == "" {
		deps.Comparison = config.ComparisonString
	}

	return &Updater{deps: deps}
}

// Run performs one update pass.
// On failure the returned Result has OutcomeFailed and the error says which step broke.
func (u *Updater) Run(ctx context.Context) (Result, error) {
	target, err := u.deps.Target.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load target version: %w", err)
	}

	ctx = logger.WithKV(ctx, "version", target.MinecraftVersion)

	logger.Info(ctx, "Fetching the build list from the registry")

	project, err := u.deps.Registry.FetchBuilds(ctx, target.MinecraftVersion)
	if err != nil {
		return Result{}, fmt.Errorf("fetch builds: %w", err)
	}

	latest, err := project.Latest()
	if err != nil {
		return Result{}, fmt.Errorf("select newest build: %w", err)
	}

	upToDate, err := u.isInstalled(ctx, latest.Number)
	if err != nil {
		return Result{}, err
	}

	if upToDate {
		logger.InfoKV(ctx, "Newest build is already installed", "build", latest.Number)
		return Result{Outcome: OutcomeNoChange, Build: latest.Number}, nil
	}

	if err = u.install(ctx, target.MinecraftVersion, &latest); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeUpdated, Build: latest.Number}, nil
}

// isInstalled compares the recorded marker with the candidate build.
func (u *Updater) isInstalled(ctx context.Context, build int) (bool, error) {
	raw, found, err := u.deps.Marker.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("read build marker: %w", err)
	}

	if !found {
		logger.Info(ctx, "No build marker found, update needed")
		return false, nil
	}

	if marker.Matches(raw, build, u.deps.Comparison) {
		return true, nil
	}

	logger.InfoKV(ctx, "Build mismatch detected", "recorded", raw, "newest", build)

	return false, nil
}

// install replaces the jar with the candidate build and records it.
func (u *Updater) install(ctx context.Context, version string, build *paper.Build) error {
	// The file name comes from the listing; rebuilding it from the version breaks
	// as soon as upstream changes the naming scheme.
	application, err := build.Application()
	if err != nil {
		return fmt.Errorf("select download: %w", err)
	}

	removed, err := u.deps.Artifact.Remove(ctx)
	if err != nil {
		return err
	}

	if removed {
		logger.Info(ctx, "Deleted old jar")
	}

	ctx = logger.WithFields(ctx, map[string]any{
		"build": build.Number,
		"file":  application.Name,
	})

	logger.Info(ctx, "Downloading latest build")

	data, err := u.deps.Registry.Download(ctx, version, build.Number, application.Name)
	if err != nil {
		return fmt.Errorf("download build %d: %w", build.Number, err)
	}

	if err = u.deps.Artifact.Install(ctx, data); err != nil {
		return fmt.Errorf("install build %d: %w", build.Number, err)
	}

	logger.InfoKV(ctx, "Downloaded latest build", "bytes", len(data))

	if err = u.deps.Marker.Write(ctx, build.ID()); err != nil {
		return fmt.Errorf("write build marker: %w", err)
	}

	logger.Info(ctx, "Updated build marker")

	return nil
}
