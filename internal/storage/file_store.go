// Package storage persists the trip document as one pretty-printed JSON file.
// Every edit reads the whole file, applies one change in memory and writes the
// whole file back.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"trip_tracker/internal/models"
)

// ErrStorage wraps every failure to read, parse or write the data file.
var ErrStorage = errors.New("storage error")

// FileStore is the single writer of the data file. The mutex serializes
// edits inside this process only.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the whole document.
func (s *FileStore) Load() (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Snapshot loads the document and, if prepare reports a change, writes it back
// before returning. A failed write-back is logged and the loaded document is
// still returned.
func (s *FileStore) Snapshot(prepare func(*models.Trip) bool) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.read()
	if err != nil {
		return nil, err
	}
	if prepare != nil && prepare(trip) {
		if err := s.write(trip); err != nil {
			logrus.WithError(err).WithField("path", s.path).Error("Failed to persist prepared trip data.")
		} else {
			logrus.WithField("path", s.path).Info("Trip data normalized and saved.")
		}
	}
	return trip, nil
}

// Mutate runs fn against a freshly loaded document and saves the result. When
// fn fails nothing is written and its error is returned unchanged.
func Mutate[T any](s *FileStore, fn func(*models.Trip) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	trip, err := s.read()
	if err != nil {
		return zero, err
	}
	result, err := fn(trip)
	if err != nil {
		return zero, err
	}
	if err := s.write(trip); err != nil {
		return zero, err
	}
	return result, nil
}

func (s *FileStore) read() (*models.Trip, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read data file: %v", ErrStorage, err)
	}
	var trip models.Trip
	if err := json.Unmarshal(content, &trip); err != nil {
		return nil, fmt.Errorf("%w: data file is not valid JSON: %v", ErrStorage, err)
	}
	return &trip, nil
}

// write replaces the file through a temp file and rename so readers never
// observe a half-written document.
func (s *FileStore) write(trip *models.Trip) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(trip); err != nil {
		return fmt.Errorf("%w: encoding trip data: %v", ErrStorage, err)
	}
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".trip-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing temp file: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replacing data file: %v", ErrStorage, err)
	}
	return nil
}
