package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/sirupsen/logrus"
)

// Store owns the profiles JSON file. A missing file is created with an
// empty profiles mapping, matching what other tooling expects to find.
type Store struct {
	path string
	mu   sync.RWMutex
	doc  *document
}

func NewStore(path string) (*Store, error) {
	store := &Store{path: path, doc: &document{}}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := store.persistLocked(); err != nil {
			return nil, fmt.Errorf("cant create default profiles file: %w", err)
		}
		logrus.WithField("path", path).Info("Created default profiles file")
		return store, nil
	}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// Relocate points the store at a different file and loads it, used when a
// settings reload moves profiles_file. A missing new file is created with
// an empty mapping, same as NewStore.
func (s *Store) Relocate(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == path {
		return nil
	}
	s.path = path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.doc = &document{}
		if err := s.persistLocked(); err != nil {
			return fmt.Errorf("cant create default profiles file: %w", err)
		}
		logrus.WithField("path", path).Info("Created default profiles file")
		return nil
	}
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("cant read profiles file %s: %w", s.path, err)
	}
	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("cant parse profiles file %s: %w", s.path, err)
	}
	s.doc = doc
	logrus.WithFields(logrus.Fields{
		"path":     s.path,
		"profiles": len(doc.profiles),
	}).Debug("Profiles loaded")
	return nil
}

// Get returns the profile by name, or errs.ErrProfileNotFound.
func (s *Store) Get(name string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, profile := s.doc.find(name); profile != nil {
		return profile, nil
	}
	return nil, fmt.Errorf("profile %q: %w", name, errs.ErrProfileNotFound)
}

// List returns all profiles in file order.
func (s *Store) List() []*Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Profile, len(s.doc.profiles))
	copy(out, s.doc.profiles)
	return out
}

// Names returns all profile names in file order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.doc.profiles))
	for _, profile := range s.doc.profiles {
		names = append(names, profile.Name)
	}
	return names
}

// Save creates or overwrites a profile and persists the store.
func (s *Store) Save(name, description string, monitors Assignments) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := &Profile{Name: name, Description: description, Monitors: monitors}
	if i, existing := s.doc.find(name); existing != nil {
		s.doc.profiles[i] = profile
	} else {
		s.doc.profiles = append(s.doc.profiles, profile)
	}
	return s.persistLocked()
}

// Delete removes a profile and persists the store.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, existing := s.doc.find(name)
	if existing == nil {
		return fmt.Errorf("profile %q: %w", name, errs.ErrProfileNotFound)
	}
	s.doc.profiles = append(s.doc.profiles[:i], s.doc.profiles[i+1:]...)
	return s.persistLocked()
}

func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cant marshal profiles: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("cant create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("cant write profiles file %s: %w", s.path, err)
	}
	return nil
}
