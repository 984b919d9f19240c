// Package common holds helpers shared by several services.
//
// It loads the settings file, applies the log level and builds the registry
// client and local stores every command works with.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
