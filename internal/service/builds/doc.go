// Package builds prints the registry listing for the tracked version.
package builds
