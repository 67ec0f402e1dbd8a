// ABOUTME: Durable load/save of the capability index document
// ABOUTME: Atomic temp-file-and-rename writes, structural validation, single-writer locking
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/toolscout/toolscout/internal/capability"
)

// Store persists the capability index as one JSON document at a fixed
// path. Writers are serialized by an in-process mutex; every save goes
// through a temporary file and an atomic rename, so a crash mid-write
// never leaves a truncated index behind. Loads return an immutable
// snapshot: callers may read it concurrently but must mutate only
// through Update.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store backed by the given file path
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the index file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether an index document is present on disk
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads and validates the index document. A missing file returns
// os.ErrNotExist; a structurally invalid document returns a
// *ValidationError.
func (s *Store) Load() (*capability.Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var idx capability.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &ValidationError{Path: s.path, Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}
	if err := validate(&idx); err != nil {
		return nil, &ValidationError{Path: s.path, Reason: err.Error()}
	}
	return &idx, nil
}

// Save writes the index atomically, replacing any previous document
func (s *Store) Save(idx *capability.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(idx)
}

// Update applies fn to the current index under the writer lock and
// persists the result. The whole read-modify-write is serialized against
// other updates, so concurrent feedback events never lose increments.
func (s *Store) Update(fn func(*capability.Index) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(idx); err != nil {
		return err
	}
	return s.saveLocked(idx)
}

// Replace rebuilds the index under the writer lock. fn receives the
// current on-disk document (nil when missing or structurally invalid)
// and returns the replacement to persist. The whole load-rebuild-save
// is serialized against Update, so a feedback event committed before
// the replace is never overwritten by a stale snapshot.
func (s *Store) Replace(fn func(prior *capability.Index) (*capability.Index, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior, err := s.loadLocked()
	if err != nil {
		if !os.IsNotExist(err) && !IsValidation(err) {
			return err
		}
		prior = nil
	}
	next, err := fn(prior)
	if err != nil {
		return err
	}
	return s.saveLocked(next)
}

func (s *Store) loadLocked() (*capability.Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var idx capability.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &ValidationError{Path: s.path, Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}
	if err := validate(&idx); err != nil {
		return nil, &ValidationError{Path: s.path, Reason: err.Error()}
	}
	return &idx, nil
}

func (s *Store) saveLocked(idx *capability.Index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".index-*.json.tmp")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// validate checks the structural invariants of a loaded index
func validate(idx *capability.Index) error {
	if idx.Version <= 0 {
		return errors.New("missing or invalid version field")
	}
	if idx.Capabilities == nil {
		return errors.New("missing capabilities map")
	}
	for key, c := range idx.Capabilities {
		if c == nil {
			return fmt.Errorf("capability %q is null", key)
		}
		if c.ID == "" {
			return fmt.Errorf("capability %q has no id", key)
		}
		if c.ID != key {
			return fmt.Errorf("capability id %q stored under key %q", c.ID, key)
		}
		if c.SuccessRate < 0 || c.SuccessRate > 1 {
			return fmt.Errorf("capability %q has success rate %v outside [0,1]", key, c.SuccessRate)
		}
		if c.ConfidenceBoost < -1 || c.ConfidenceBoost > 1 {
			return fmt.Errorf("capability %q has confidence boost %v outside [-1,1]", key, c.ConfidenceBoost)
		}
		if c.UsageCount < 0 {
			return fmt.Errorf("capability %q has negative usage count", key)
		}
	}
	return nil
}

// IsValidation reports whether err is a structural validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
