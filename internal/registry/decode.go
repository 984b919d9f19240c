package registry

import (
	"encoding/json"
	"fmt"

	"github.com/oshokin/paper-updater/internal/domain/paper"
)

// projectWire mirrors the listing JSON. Pointer fields tell absent keys from zero values.
type projectWire struct {
	ProjectID   *string      `json:"project_id"`
	ProjectName *string      `json:"project_name"`
	Version     *string      `json:"version"`
	Builds      *[]buildWire `json:"builds"`
}

type buildWire struct {
	Build     *int                     `json:"build"`
	Time      string                   `json:"time"`
	Channel   string                   `json:"channel"`
	Promoted  bool                     `json:"promoted"`
	Changes   []changeWire             `json:"changes"`
	Downloads map[string]*downloadWire `json:"downloads"`
}

type changeWire struct {
	Commit  string `json:"commit"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

type downloadWire struct {
	Name   *string `json:"name"`
	SHA256 string  `json:"sha256"`
}

// requiredDownloads must be present on every build.
//
//nolint:gochecknoglobals // Read-only lookup table.
var requiredDownloads = []string{paper.DownloadApplication, paper.DownloadMojangMappings}

// decodeProject validates body and converts it into a domain project.
func decodeProject(body []byte) (*paper.Project, error) {
	var wire projectWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	switch {
	case wire.ProjectID == nil:
		return nil, missingField("project_id")
	case wire.ProjectName == nil:
		return nil, missingField("project_name")
	case wire.Version == nil:
		return nil, missingField("version")
	case wire.Builds == nil:
		return nil, missingField("builds")
	}

	builds := make([]paper.Build, 0, len(*wire.Builds))

	for i, item := range *wire.Builds {
		build, err := item.toDomain()
		if err != nil {
			return nil, fmt.Errorf("builds[%d]: %w", i, err)
		}

		builds = append(builds, build)
	}

	return &paper.Project{
		ID:      *wire.ProjectID,
		Name:    *wire.ProjectName,
		Version: *wire.Version,
		Builds:  builds,
	}, nil
}

// toDomain converts a single build, checking its required fields.
func (b *buildWire) toDomain() (paper.Build, error) {
	if b.Build == nil {
		return paper.Build{}, missingField("build")
	}

	downloads := make(map[string]paper.Download, len(b.Downloads))

	for _, kind := range requiredDownloads {
		download, ok := b.Downloads[kind]
		if !ok || download == nil {
			return paper.Build{}, missingField("downloads." + kind)
		}

		if download.Name == nil {
			return paper.Build{}, missingField("downloads." + kind + ".name")
		}
	}

	for kind, download := range b.Downloads {
		if download == nil || download.Name == nil {
			continue
		}

		downloads[kind] = paper.Download{
			Name:   *download.Name,
			SHA256: download.SHA256,
		}
	}

	changes := make([]paper.Change, 0, len(b.Changes))
	for _, change := range b.Changes {
		changes = append(changes, paper.Change(change))
	}

	return paper.Build{
		Number:    *b.Build,
		Time:      b.Time,
		Channel:   b.Channel,
		Promoted:  b.Promoted,
		Changes:   changes,
		Downloads: downloads,
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: missing %s", ErrParse, name)
}
