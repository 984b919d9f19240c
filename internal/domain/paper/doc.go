// Package paper holds the domain model of the build registry: projects,
// their builds, changes and downloads, plus the locally tracked target version.
package paper
