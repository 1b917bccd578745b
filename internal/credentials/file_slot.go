package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultStorageDir is the default directory for the durable session file,
// relative to the user's home directory.
const DefaultStorageDir = ".config/emsctl"

// FileSlot persists a session as a JSON file so that it survives process
// restarts.
//
// SECURITY: the file holds live credentials.
//   - The directory is created with 0700 permissions (owner only)
//   - The file is written with 0600 permissions (owner read/write only)
//   - Writes go through a temp file and rename so readers never see a
//     partially written record
type FileSlot struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

// NewFileSlot creates a file slot in dir. An empty dir resolves to
// ~/.config/emsctl.
func NewFileSlot(dir string, logger *slog.Logger) (*FileSlot, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, DefaultStorageDir)
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session storage directory: %w", err)
	}

	return &FileSlot{dir: dir, logger: logger}, nil
}

func (f *FileSlot) Name() string { return "file" }

// Path returns the location of the session file.
func (f *FileSlot) Path() string {
	return filepath.Join(f.dir, SessionKey+".json")
}

func (f *FileSlot) Load(ctx context.Context) (*StoredSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// #nosec G304 -- path is built from the configured directory and a constant name
	data, err := os.ReadFile(f.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &StoreError{Operation: "load", Slot: f.Name(), Cause: err}
	}

	var s StoredSession
	if err := json.Unmarshal(data, &s); err != nil || s.Validate() != nil {
		// An unreadable record is treated as no session at all; the next
		// write or clear replaces it.
		f.logger.Warn("Ignoring unreadable session file",
			"event", "session_file_corrupt",
			"path", f.Path(),
		)
		return nil, nil
	}

	return &s, nil
}

func (f *FileSlot) Save(ctx context.Context, s StoredSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.dir, SessionKey+"-*.tmp")
	if err != nil {
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}
	if err := os.Rename(tmpName, f.Path()); err != nil {
		return &StoreError{Operation: "save", Slot: f.Name(), Cause: err}
	}

	return nil
}

func (f *FileSlot) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StoreError{Operation: "delete", Slot: f.Name(), Cause: err}
	}
	return nil
}

var _ Slot = (*FileSlot)(nil)
