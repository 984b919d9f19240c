package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/paper-updater/internal/config"
)

// FileRepository reads and writes the marker file.
type FileRepository struct {
	// path is the filesystem location of the marker file.
	path string
}

// NewFileRepository creates a repository for the marker file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Read returns the raw marker content. The boolean is false when no marker exists.
func (r *FileRepository) Read(_ context.Context) (string, bool, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("read marker file: %w", err)
	}

	return string(contents), true, nil
}

// Write replaces the marker content with buildID.
func (r *FileRepository) Write(_ context.Context, buildID string) error {
	if err := os.WriteFile(r.path, []byte(buildID), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write marker file: %w", err)
	}

	return nil
}
