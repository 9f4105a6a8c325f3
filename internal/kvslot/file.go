package kvslot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// safeKey restricts slot keys to filename-safe characters so a key maps
// directly onto a file name.
var safeKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// File is a Slot storing each key as one file under a root directory.
// Rooted in SessionDir() it behaves like session-scoped storage: values
// survive within the current session directory and are gone once the
// directory is.
type File struct {
	root string
}

// NewFile creates a file-backed slot rooted at dir, creating the
// directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory %s: %w", dir, err)
	}
	return &File{root: dir}, nil
}

// path maps a key to its backing file.
func (f *File) path(key string) (string, error) {
	if !safeKey.MatchString(key) {
		return "", fmt.Errorf("invalid slot key %q: must match %s", key, safeKey.String())
	}
	return filepath.Join(f.root, key+".slot"), nil
}

// Get reads the value stored under key. A missing file reports absent,
// not an error.
func (f *File) Get(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value under key. The write goes through a temp file and
// rename so a crash mid-write never leaves a truncated value.
func (f *File) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("commit slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the key's file if present.
func (f *File) Delete(key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file-backed slot.
func (f *File) Close() error { return nil }

var (
	sessionOnce sync.Once
	sessionDir  string
	sessionErr  error
)

// SessionDir returns a directory scoped to the current process session,
// created on first use under the system temp directory. Every process
// gets its own directory, so slots rooted here approximate
// session-scoped browser storage: durable across operations within the
// session, absent in the next one.
func SessionDir() (string, error) {
	sessionOnce.Do(func() {
		dir := filepath.Join(os.TempDir(), fmt.Sprintf("ticketgrid-session-%d", os.Getpid()))
		sessionErr = os.MkdirAll(dir, 0o755)
		if sessionErr == nil {
			sessionDir = dir
		}
	})
	return sessionDir, sessionErr
}
