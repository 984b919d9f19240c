// Package registry is a client for the build registry HTTP API.
//
// It lists the builds published for a version and downloads build files.
// Responses are decoded into wire structs first and turned into domain
// records only when every required field is present, so a malformed listing
// yields ErrParse instead of partially filled data.
package registry
