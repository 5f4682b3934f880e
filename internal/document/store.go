package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"ideaforge/internal/errors"
)

// DirStore writes documents as <slug>.md files under a flat output
// directory. No history, no versions; a rewrite replaces the file.
type DirStore struct {
	dir string
	mu  sync.Mutex
}

// NewDirStore creates a DirStore over the given directory, creating it if
// needed.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the store's output directory.
func (s *DirStore) Dir() string { return s.dir }

// Write renders the document and writes it to <slug>.md, stamping
// CreatedAt on first write and UpdatedAt always. Returns the written path.
func (s *DirStore) Write(doc Document) (string, error) {
	if strings.TrimSpace(doc.Title) == "" {
		return "", errors.NewValidationError("document title cannot be empty").WithField("title")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, Slug(doc.Title))
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		if existing, err := s.readLocked(path); err == nil && !existing.CreatedAt.IsZero() {
			doc.CreatedAt = existing.CreatedAt
		} else {
			doc.CreatedAt = now
		}
	}
	doc.UpdatedAt = now

	rendered, err := doc.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", errors.Wrap(err, "write document")
	}
	return path, nil
}

// Read loads and parses the document at the given path.
func (s *DirStore) Read(path string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked(path)
}

func (s *DirStore) readLocked(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.NewNotFoundError("document", path).
				WithCause(errors.ErrDocumentNotFound)
		}
		return Document{}, errors.Wrap(err, "read document")
	}
	return Parse(string(data))
}

// List returns the paths of all markdown files in the output directory,
// sorted by name.
func (s *DirStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "read output directory")
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
