package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/gogpu/presenter"
)

// StorageKey names the store file.
const StorageKey = "ssp.templates.v1"

// ErrNotFound is returned when no template matches.
var ErrNotFound = errors.New("template: not found")

// DefaultPath returns <user config dir>/presenter/ssp.templates.v1.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("template: locate config dir: %w", err)
	}
	return filepath.Join(dir, "presenter", StorageKey+".json"), nil
}

// Store is a file-backed template list. It is safe for concurrent use.
type Store struct {
	path string

	mu        sync.RWMutex
	templates []Template
}

// Open loads the store at path. A missing file gives an empty store, as
// does a file that cannot be parsed; the latter is logged and replaced on
// the next write.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("template: read store: %w", err)
	}

	var list []Template
	if err := json.Unmarshal(data, &list); err != nil {
		presenter.Logger().Warn("template: ignoring corrupt store", "path", path, "err", err)
		return s, nil
	}
	s.templates = list
	return s, nil
}

// Path returns the store file.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}

// List returns the templates, most recent first.
func (s *Store) List() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.templates)
}

// Add puts t at the front and rewrites the file. The store is unchanged if
// the write fails.
func (s *Store) Add(t Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Template, 0, len(s.templates)+1)
	next = append(next, t)
	next = append(next, s.templates...)
	if err := s.write(next); err != nil {
		return err
	}
	s.templates = next
	return nil
}

// Delete removes the template with id and rewrites the file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.templates, func(t Template) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Delete(slices.Clone(s.templates), i, i+1)
	if err := s.write(next); err != nil {
		return err
	}
	s.templates = next
	return nil
}

// Get returns the template with id.
func (s *Store) Get(id string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Find resolves query to a template: an exact id first, then an exact
// name, then a case-insensitive name, then the best fuzzy name match.
// Among equal names the most recent template wins.
func (s *Store) Find(query string) (Template, error) {
	query = strings.TrimSpace(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return Template{}, fmt.Errorf("%w: empty query", ErrNotFound)
	}
	for _, t := range s.templates {
		if t.ID == query {
			return t, nil
		}
	}
	for _, t := range s.templates {
		if t.Name == query {
			return t, nil
		}
	}
	for _, t := range s.templates {
		if strings.EqualFold(t.Name, query) {
			return t, nil
		}
	}

	names := make([]string, len(s.templates))
	for i, t := range s.templates {
		names[i] = t.Name
	}
	if matches := fuzzy.Find(query, names); len(matches) > 0 {
		return s.templates[matches[0].Index], nil
	}
	return Template{}, fmt.Errorf("%w: %s", ErrNotFound, query)
}

// write replaces the file with list through a temp file and rename.
func (s *Store) write(list []Template) error {
	if list == nil {
		list = []Template{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("template: encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("template: create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("template: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("template: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("template: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("template: replace store: %w", err)
	}

	presenter.Logger().Debug("template: store written", "path", s.path, "count", len(list))
	return nil
}
