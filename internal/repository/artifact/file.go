package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goupdate "github.com/doitdistributed/go-update"
)

// DefaultFileMode is the permission of the installed jar.
const DefaultFileMode os.FileMode = 0o644

// ErrRemove is returned when the previous artifact exists but cannot be deleted.
var ErrRemove = errors.New("remove previous artifact")

// FileRepository owns the artifact file at a fixed path.
type FileRepository struct {
	// path is the filesystem location of the jar.
	path string
	// mode is applied to the installed file.
	mode os.FileMode
}

// NewFileRepository creates a repository for the artifact at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
		mode: DefaultFileMode,
	}
}

// Path returns the location of the artifact.
func (r *FileRepository) Path() string {
	return r.path
}

// Remove deletes the artifact. It reports whether a file was actually removed.
func (r *FileRepository) Remove(_ context.Context) (bool, error) {
	err := os.Remove(r.path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("%w %s: %w", ErrRemove, r.path, err)
}

// Install writes data to the artifact path, replacing any previous content.
func (r *FileRepository) Install(_ context.Context, data []byte) error {
	// go-update renames the current target aside before moving the new file in,
	// so the target has to exist.
	created, err := r.ensureTarget()
	if err != nil {
		return err
	}

	options := goupdate.Options{
		TargetPath: r.path,
		TargetMode: r.mode,
	}

	if err = goupdate.Apply(bytes.NewReader(data), options); err != nil {
		// An empty placeholder must not pass for an installed jar.
		if created {
			_ = os.Remove(r.path)
		}

		return fmt.Errorf("apply artifact: %w", err)
	}

	return nil
}

// ensureTarget creates an empty file at the artifact path when none exists.
// It reports whether the file was created.
func (r *FileRepository) ensureTarget() (bool, error) {
	_, err := os.Stat(r.path)
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat artifact: %w", err)
	}

	placeholder, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, r.mode)
	if err != nil {
		return false, fmt.Errorf("create artifact: %w", err)
	}

	if err = placeholder.Close(); err != nil {
		_ = os.Remove(r.path)
		return false, fmt.Errorf("create artifact: %w", err)
	}

	return true, nil
}
