package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/paper-updater/internal/config"
	"github.com/oshokin/paper-updater/internal/logger"
)

// lockLifetime is the period after which a lock without a readable owner is ignored.
const lockLifetime = 30 * time.Second

// ErrAlreadyRunning is returned when another updater holds the run lock.
var ErrAlreadyRunning = errors.New("the updater is already running")

// RunLock is an exclusive lock file holding the PID of its owner.
type RunLock struct {
	// path is the filesystem location of the lock file.
	path string
}

// AcquireLock creates the lock file at path. A lock left behind by a process
// that no longer exists is removed and acquisition is retried once.
func AcquireLock(ctx context.Context, path string) (*RunLock, error) {
	path = filepath.Clean(path)

	logger.Debug(ctx, "Checking for the presence of a run lock")

	for attempt := 0; attempt < 2; attempt++ {
		err := createLockFile(path)
		if err == nil {
			return &RunLock{path: path}, nil
		}

		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}

		if isLockHeld(ctx, path) {
			return nil, ErrAlreadyRunning
		}

		logger.InfoKV(ctx, "The run lock is stale, removing it", "path", path)

		if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale lock file: %w", err)
		}
	}

	return nil, ErrAlreadyRunning
}

// Release removes the lock file.
func (l *RunLock) Release(ctx context.Context) {
	if l == nil {
		return
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove the run lock", "path", l.path, "error", err)
	}
}

// createLockFile exclusively creates path and writes the current PID into it.
func createLockFile(path string) error {
	lockFile, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, config.DefaultFilePermissions)
	if err != nil {
		return err
	}

	_, writeErr := lockFile.WriteString(strconv.Itoa(os.Getpid()))
	closeErr := lockFile.Close()

	if err = errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}

// isLockHeld reports whether the owner recorded in the lock file is another
// running updater.
func isLockHeld(ctx context.Context, path string) bool {
	contents, err := os.ReadFile(path)
	if err != nil {
		return !errors.Is(err, os.ErrNotExist)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		// No owner to check; trust the lock while it is fresh.
		fileInfo, statErr := os.Stat(path)
		if statErr != nil {
			return !errors.Is(statErr, os.ErrNotExist)
		}

		return time.Since(fileInfo.ModTime()) <= lockLifetime
	}

	// A lock naming this process was left by a previous run that got the same PID.
	if pid == os.Getpid() {
		return false
	}

	process, err := ps.FindProcess(pid)
	if err != nil {
		logger.Warnf(ctx, "Unable to look up lock owner %d: %v", pid, err)
		return true
	}

	if process == nil {
		return false
	}

	selfName, err := executableName()
	if err != nil {
		logger.Warnf(ctx, "Unable to resolve the updater executable: %v", err)
		return true
	}

	if !isSameExecutable(process.Executable(), selfName) {
		logger.DebugKV(ctx, "Lock owner PID belongs to another program",
			"pid", pid, "executable", process.Executable())

		return false
	}

	return true
}

// executableName returns the file name of the running binary.
func executableName() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Base(executable), nil
}

// commandNameLimit is the length Linux truncates process command names to.
const commandNameLimit = 15

// isSameExecutable compares a process list entry with the updater binary name.
func isSameExecutable(processName, selfName string) bool {
	if processName == selfName {
		return true
	}

	return len(processName) == commandNameLimit && strings.HasPrefix(selfName, processName)
}
