package paper

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// DownloadApplication is the download kind of the server jar.
	DownloadApplication = "application"
	// DownloadMojangMappings is the download kind of the obfuscation mappings.
	DownloadMojangMappings = "mojang-mappings"
)

var (
	// ErrNoBuilds is returned when the registry lists no builds for the version.
	ErrNoBuilds = errors.New("registry lists no builds")
	// ErrNoApplication is returned when a build carries no application download.
	ErrNoApplication = errors.New("build has no application download")
)

// Target is the locally configured version the updater tracks.
type Target struct {
	// MinecraftVersion is the upstream version whose builds are followed.
	MinecraftVersion string `json:"minecraftVersion"`
}

// Project is the registry listing of builds for one version.
type Project struct {
	// ID is the registry identifier of the project, e.g. "paper".
	ID string
	// Name is the display name of the project.
	Name string
	// Version is the Minecraft version the builds belong to.
	Version string
	// Builds are listed oldest first as returned by the registry.
	Builds []Build
}

// Build is one published build.
type Build struct {
	// Number is the build identifier.
	Number int
	// Time is the creation timestamp as published.
	Time string
	// Channel is the release channel, e.g. "default" or "experimental".
	Channel string
	// Promoted tells whether the build was promoted upstream.
	Promoted bool
	// Changes lists the commits that went into the build.
	Changes []Change
	// Downloads maps a download kind to its file.
	Downloads map[string]Download
}

// Change describes one commit in a build.
type Change struct {
	Commit  string
	Summary string
	Message string
}

// Download is one downloadable file of a build.
type Download struct {
	// Name is the published file name.
	Name string
	// SHA256 is the published hex digest. It is not verified.
	SHA256 string
}

// Latest returns the last build in registry order.
// The registry lists builds in ascending order, so no maximum is computed.
func (p *Project) Latest() (Build, error) {
	if p == nil || len(p.Builds) == 0 {
		return Build{}, ErrNoBuilds
	}

	return p.Builds[len(p.Builds)-1], nil
}

// ID returns the build number as the text stored in the marker file.
func (b *Build) ID() string {
	return strconv.Itoa(b.Number)
}

// Application returns the server jar download of the build.
func (b *Build) Application() (Download, error) {
	download, ok := b.Downloads[DownloadApplication]
	if !ok || download.Name == "" {
		return Download{}, fmt.Errorf("build %d: %w", b.Number, ErrNoApplication)
	}

	return download, nil
}
