package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/service/builds"
	"github.com/oshokin/paper-updater/internal/service/status"
	"github.com/oshokin/paper-updater/internal/service/updater"
	"github.com/oshokin/paper-updater/internal/version"
)

var (
	// configPath to the settings YAML file.
	configPath string

	// logLevel overrides the level from the settings file.
	logLevel string

	// noColor disables styled tables.
	noColor bool

	// minecraftVersion lists builds for a version other than the tracked one.
	minecraftVersion string

	// rootCmd checks the registry and installs the newest build.
	rootCmd = &cobra.Command{
		Use:          "paper-updater",
		Short:        "Install the newest Paper build for the configured Minecraft version",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := updater.Run(cmd.Context(), &updater.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
			})

			return err
		},
	}

	// buildsCmd lists the published builds.
	buildsCmd = &cobra.Command{
		Use:          "builds",
		Short:        "List the builds published for the configured Minecraft version",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return builds.Run(cmd.Context(), &builds.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Version:    minecraftVersion,
				Out:        cmd.OutOrStdout(),
				NoColor:    noColor,
			})
		},
	}

	// statusCmd compares the installed build with the registry.
	statusCmd = &cobra.Command{
		Use:          "status",
		Short:        "Show the installed build and whether a newer one is available",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return status.Run(cmd.Context(), &status.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Out:        cmd.OutOrStdout(),
				NoColor:    noColor,
			})
		},
	}
)

// Exit codes of the paper-updater binary.
const (
	exitOK     = 0
	exitFailed = 1
)

// Execute runs the paper-updater CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	code := run(ctx, os.Args[1:])

	stop()

	os.Exit(code)
}

// run executes the command line args and maps the outcome to an exit code.
func run(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return exitFailed
	}

	return exitOK
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to settings file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "print plain tab-separated output")

	buildsCmd.Flags().StringVarP(&minecraftVersion, "minecraft-version", "m", "", "list builds for this version instead of the configured one")

	rootCmd.AddCommand(buildsCmd, statusCmd)
	version.AttachCobraVersionCommand(rootCmd)
}
