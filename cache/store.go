package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/use-agent/clubfeed/models"
)

// Store persists the club list as an indented UTF-8 JSON array.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted clubs. found is false, with a nil error, when the
// file does not exist.
func (s *Store) Load() (clubs []models.Club, found bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, models.NewScrapeError(models.ErrCodeCacheIO, "read "+s.path, err)
	}

	if err := json.Unmarshal(data, &clubs); err != nil {
		return nil, false, models.NewScrapeError(models.ErrCodeCacheIO, "decode "+s.path, err)
	}
	if clubs == nil {
		clubs = []models.Club{}
	}
	return clubs, true, nil
}

// Save replaces the file with clubs. The new content is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash mid-write never leaves a truncated cache behind.
func (s *Store) Save(clubs []models.Club) error {
	if clubs == nil {
		clubs = []models.Club{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(clubs); err != nil {
		return models.NewScrapeError(models.ErrCodeCacheIO, "encode clubs", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return models.NewScrapeError(models.ErrCodeCacheIO, "create temp file in "+dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return models.NewScrapeError(models.ErrCodeCacheIO, "write "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return models.NewScrapeError(models.ErrCodeCacheIO, "close "+tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return models.NewScrapeError(models.ErrCodeCacheIO, "replace "+s.path, err)
	}
	return nil
}
