// Package spherecache caches sampling indices across runs.
//
// Building a sampling index for video-sized output dominates startup time,
// and the index depends only on the sizing parameters and the projection, so
// it is stored under a key derived from them and reloaded by later runs.
// Caching is an optimization, never a correctness dependency: every cache
// failure degrades to recomputing the index, and a warning is the only
// visible effect.
package spherecache

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mrjoshuak/go-spherical/sphere"
)

var (
	// ErrNotFound is returned by a Store when no entry exists for a key.
	ErrNotFound = errors.New("spherecache: no cache entry")

	// ErrStale is returned by a Store when an entry exists but predates
	// the current build of the program. A stale entry may have been
	// written by an incompatible version of the index builder.
	ErrStale = errors.New("spherecache: cache entry is stale")
)

// Store is a key-value store for encoded sampling indices. Implementations
// need not be safe for concurrent writes to the same key; callers should
// run one index build per key at a time.
type Store interface {
	// Load returns the payload stored under key, or ErrNotFound if there
	// is none, or ErrStale if the entry cannot be trusted.
	Load(key string) ([]byte, error)

	// Store saves the payload under key, replacing any previous entry.
	Store(key string, data []byte) error
}

// KeyFor derives the cache key for a sampling index built with the given
// sizing parameters and projection.
func KeyFor(sizing sphere.Sizing, proj sphere.Projection) string {
	return fmt.Sprintf("samplingIndices_w%d_h%d_cu%d_sw%d_sh%d_%s",
		sizing.Width, sizing.Height, sizing.FaceSize,
		sizing.SubWidth, sizing.SubHeight, proj.Tag())
}

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

// SetLogger sets the logger used for cache diagnostics. Passing nil
// restores the default logger.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func log() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LoadIndex returns the cached sampling index for the given parameters, or
// (nil, false) if the cache has no usable entry. Cache problems other than
// a plain miss are logged at warning level; none of them are reported as
// failures.
func LoadIndex(store Store, sizing sphere.Sizing, proj sphere.Projection) (*sphere.SamplingIndex, bool) {
	key := KeyFor(sizing, proj)
	data, err := store.Load(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log().Warn("cannot read sampling index cache", "key", key, "err", err)
		}
		return nil, false
	}
	index, err := sphere.DecodeSamplingIndex(sizing, data)
	if err != nil {
		log().Warn("cannot decode cached sampling index", "key", key, "err", err)
		return nil, false
	}
	return index, true
}

// SaveIndex stores the sampling index under its derived key. The write is
// best effort: failures are logged at warning level and swallowed.
func SaveIndex(store Store, index *sphere.SamplingIndex, proj sphere.Projection) {
	key := KeyFor(index.Sizing, proj)
	if err := store.Store(key, index.Encode()); err != nil {
		log().Warn("cannot write sampling index cache", "key", key, "err", err)
	}
}

// MemStore is an in-memory Store, mainly for tests and single-run use.
// It is safe for concurrent access.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]byte)}
}

// Load returns the payload stored under key.
func (m *MemStore) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Store saves the payload under key.
func (m *MemStore) Store(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}
