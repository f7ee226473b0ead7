package spherecache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DirStore is a Store backed by one file per key in a cache directory.
//
// Entries whose modification time is not strictly newer than NotBefore are
// reported as ErrStale. NotBefore defaults to the modification time of the
// running executable, so that indices written by an older build of the
// program are rejected and recomputed.
type DirStore struct {
	dir       string
	notBefore time.Time
}

// NewDirStore creates a store rooted at dir, creating the directory if
// needed. The staleness reference time is taken from the running
// executable; use NewDirStoreNotBefore to set it explicitly.
func NewDirStore(dir string) (*DirStore, error) {
	return NewDirStoreNotBefore(dir, executableModTime())
}

// NewDirStoreNotBefore creates a store rooted at dir that treats entries
// not strictly newer than notBefore as stale. A zero notBefore accepts
// every entry.
func NewDirStoreNotBefore(dir string, notBefore time.Time) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spherecache: cannot create cache directory: %w", err)
	}
	return &DirStore{dir: dir, notBefore: notBefore}, nil
}

// Dir returns the cache directory.
func (d *DirStore) Dir() string {
	return d.dir
}

// Path returns the file path used for a key.
func (d *DirStore) Path(key string) string {
	return filepath.Join(d.dir, key)
}

// Load returns the contents of the file for key.
func (d *DirStore) Load(key string) ([]byte, error) {
	path := d.Path(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !d.notBefore.IsZero() && !info.ModTime().After(d.notBefore) {
		return nil, fmt.Errorf("%w: %s written %s, build %s",
			ErrStale, key,
			info.ModTime().Format(time.RFC3339),
			d.notBefore.Format(time.RFC3339))
	}
	return os.ReadFile(path)
}

// Store writes the payload to the file for key.
func (d *DirStore) Store(key string, data []byte) error {
	return os.WriteFile(d.Path(key), data, 0o644)
}

// executableModTime returns the modification time of the running
// executable, or the zero time if it cannot be determined.
func executableModTime() time.Time {
	exe, err := os.Executable()
	if err != nil {
		return time.Time{}
	}
	info, err := os.Stat(exe)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
