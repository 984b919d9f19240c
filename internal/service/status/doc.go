// Package status reports whether a newer build is waiting to be installed.
//
// It only reads: the version file (created with defaults when missing, like
// every other command), the marker and the registry listing.
package status
