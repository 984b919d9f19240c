package target

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/domain/paper"
)

// DefaultMinecraftVersion is written to a fresh version file.
const DefaultMinecraftVersion = "1.20.1"

// ErrParse is returned when the version file exists but cannot be understood.
var ErrParse = errors.New("parse version file")

// FileRepository reads and initialises the version file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON version file.
	path string
}

// NewFileRepository creates a repository for the version file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load returns the target stored on disk, creating the file with defaults when it is missing.
func (r *FileRepository) Load(ctx context.Context) (*paper.Target, error) {
	target, found, err := r.Peek(ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		return r.initialise()
	}

	return target, nil
}

// Peek returns the target stored on disk without touching the file. A missing file
// yields the default target and false.
func (r *FileRepository) Peek(_ context.Context) (*paper.Target, bool, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &paper.Target{MinecraftVersion: DefaultMinecraftVersion}, false, nil
		}

		return nil, false, fmt.Errorf("read version file: %w", err)
	}

	target, err := r.decode(contents)
	if err != nil {
		return nil, false, err
	}

	return target, true, nil
}

// decode parses the version file contents.
func (r *FileRepository) decode(contents []byte) (*paper.Target, error) {
	var stored struct {
		MinecraftVersion *string `json:"minecraftVersion"`
	}

	if err := json.Unmarshal(contents, &stored); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, r.path, err)
	}

	if stored.MinecraftVersion == nil || strings.TrimSpace(*stored.MinecraftVersion) == "" {
		return nil, fmt.Errorf("%w %s: minecraftVersion is missing", ErrParse, r.path)
	}

	return &paper.Target{MinecraftVersion: *stored.MinecraftVersion}, nil
}

// initialise writes the default target and returns it.
func (r *FileRepository) initialise() (*paper.Target, error) {
	target := &paper.Target{MinecraftVersion: DefaultMinecraftVersion}

	data, err := json.Marshal(target)
	if err != nil {
		return nil, fmt.Errorf("encode version file: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write version file: %w", err)
	}

	return target, nil
}
