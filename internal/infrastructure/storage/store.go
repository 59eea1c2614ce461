// Package storage owns the on-disk user document: one JSON object keyed by
// username. Every logical user action is a full load -> mutate -> save cycle
// against this file; there is no caching layer to go stale.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/domain/entities"
	"github.com/Big-Brains-Cyber/Food-Waste-Prevention-App/internal/infrastructure/config"
)

// Store is the single in-process owner of the user document. All access is
// serialized through its mutex; concurrent whole-document rewrites can
// therefore never silently drop each other's changes within one process.
type Store struct {
	path string

	mu       sync.Mutex
	revision int64 // bumped on every successful save
}

// New creates a store for the configured document path. The file is created
// with an empty document if it does not exist yet, so a first Load always
// succeeds.
func New(cfg config.StorageConfig) (*Store, error) {
	s := &Store{path: cfg.Path}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the document file.
func (s *Store) Path() string {
	return s.path
}

// Load re-reads the whole document from disk. A missing file is initialized
// to an empty document first.
func (s *Store) Load() (entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// LoadVersioned is Load plus the revision the document had at read time,
// for callers that want a stale save rejected instead of silently winning.
func (s *Store) LoadVersioned() (entities.Document, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, 0, err
	}
	return doc, s.revision, nil
}

// Save serializes the full document and replaces the file in one operation.
// The last save wins at whole-document granularity.
func (s *Store) Save(doc entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// SaveVersioned rejects the save with ErrRevisionConflict if the document
// has been saved by someone else since loadedRevision was observed.
func (s *Store) SaveVersioned(doc entities.Document, loadedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loadedRevision != s.revision {
		return fmt.Errorf("%w: loaded revision %d, current %d",
			entities.ErrRevisionConflict, loadedRevision, s.revision)
	}
	return s.save(doc)
}

// Update runs one serialized load -> mutate -> save cycle. The mutation
// operates on a fresh copy of the document; if fn returns an error nothing
// is written and the error is returned unchanged.
func (s *Store) Update(fn func(entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// HealthCheck verifies the document is present and parseable.
func (s *Store) HealthCheck() error {
	_, err := s.Load()
	return err
}

func (s *Store) load() (entities.Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Materialize the empty document so the file exists from the
			// first access on, matching every prior version of the app.
			doc := entities.Document{}
			if err := s.save(doc); err != nil {
				return nil, err
			}
			return doc, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", entities.ErrStoreUnavailable, s.path, err)
	}

	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Never auto-repair: surface enough detail for manual recovery.
		return nil, fmt.Errorf("%w: %s is not a valid user document: %v",
			entities.ErrStoreCorrupted, s.path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s holds JSON null instead of an object",
			entities.ErrStoreCorrupted, s.path)
	}
	for _, rec := range doc {
		if rec == nil {
			return nil, fmt.Errorf("%w: %s contains a null user record",
				entities.ErrStoreCorrupted, s.path)
		}
		rec.Normalize()
	}
	return doc, nil
}

func (s *Store) save(doc entities.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal user document: %w", err)
	}

	// Write to a temp file in the same directory and rename over the
	// document so readers never observe a partial write.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", entities.ErrStoreUnavailable, dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", entities.ErrStoreUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", entities.ErrStoreUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", entities.ErrStoreUnavailable, s.path, err)
	}

	s.revision++
	return nil
}

// IsCorruption reports whether err is a document corruption error.
func IsCorruption(err error) bool {
	return errors.Is(err, entities.ErrStoreCorrupted)
}
