// Package updater keeps the local server jar on the newest published build.
//
// One run loads the target version, lists the registry builds for it, compares
// the newest one with the recorded marker and, when they differ, replaces the
// jar and records the new build. Every failure ends the run; the marker is
// written only after the new jar is in place. A lock file prevents two runs
// from working on the same files at once.
package updater
