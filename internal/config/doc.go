// Package config defines the updater settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the registry location, the paths of the local state
// files and the network timeouts. A missing settings file is not an error:
// LoadOrDefault falls back to the defaults, which track Paper builds on the
// public PaperMC API.
package config
