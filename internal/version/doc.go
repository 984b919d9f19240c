// Package version exposes build metadata of the updater binary.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags, for example
//
//	-X github.com/oshokin/paper-updater/internal/version.Version=1.2.0
//
// Short and Full render the values for CLI output and logs.
package version
