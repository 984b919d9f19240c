// Package target implements persistence for the tracked Minecraft version.
//
// The FileRepository reads the version from a small JSON file and creates the
// file with the default version on first run.
package target
