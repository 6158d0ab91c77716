package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"trip_tracker/internal/models"
)

const (
	cacheFileName   = "trip_data_cache.json"
	DefaultCacheTTL = 24 * time.Hour
)

// ErrCacheMiss means there is no usable cached document: none was saved, it
// is older than the TTL, or it cannot be parsed.
var ErrCacheMiss = errors.New("no usable cached trip data")

// Cache keeps the last document loaded from the server.
type Cache interface {
	Save(trip *models.Trip) error
	Load() (*models.Trip, time.Time, error)
}

type cacheEntry struct {
	Data      *models.Trip `json:"data"`
	Timestamp int64        `json:"timestamp"` // unix milliseconds
}

// FileCache stores the document as <dir>/trip_data_cache.json.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileCache returns a cache in dir that accepts entries younger than ttl.
// A non-positive ttl means DefaultCacheTTL.
func NewFileCache(dir string, ttl time.Duration) *FileCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &FileCache{dir: dir, ttl: ttl, now: time.Now}
}

// Path returns the cache file location.
func (c *FileCache) Path() string {
	return filepath.Join(c.dir, cacheFileName)
}

// Save writes trip with the current time.
func (c *FileCache) Save(trip *models.Trip) error {
	data, err := json.Marshal(cacheEntry{Data: trip, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".trip-cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Load returns the cached document and when it was saved.
func (c *FileCache) Load() (*models.Trip, time.Time, error) {
	raw, err := os.ReadFile(c.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, time.Time{}, ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrCacheMiss, err)
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		return nil, time.Time{}, fmt.Errorf("%w: corrupt cache file", ErrCacheMiss)
	}
	saved := time.UnixMilli(entry.Timestamp)
	if c.now().Sub(saved) >= c.ttl {
		return nil, saved, fmt.Errorf("%w: cache is %s old", ErrCacheMiss, c.now().Sub(saved).Round(time.Minute))
	}
	return entry.Data, saved, nil
}

// Clear removes the cache file. A missing file is not an error.
func (c *FileCache) Clear() error {
	if err := os.Remove(c.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
