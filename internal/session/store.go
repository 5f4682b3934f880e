package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ideaforge/internal/errors"
)

// Store is the session persistence boundary.
type Store interface {
	// Create makes a new session with a generated ID and persists it.
	Create(ctx context.Context, projectName, stage string) (*Session, error)

	// Load retrieves a session by ID.
	Load(ctx context.Context, id string) (*Session, error)

	// Save persists the session, bumping UpdatedAt.
	Save(ctx context.Context, s *Session) error

	// List returns summaries of all sessions, most recently updated first.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a session and its directory.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a session with the given ID is stored.
	Exists(ctx context.Context, id string) bool

	// Current returns the active session ID, or ErrSessionNotFound when
	// no session has been marked current.
	Current(ctx context.Context) (string, error)

	// SetCurrent marks the given session as the active one.
	SetCurrent(ctx context.Context, id string) error
}

// FileStore stores sessions as JSON files under
// <base>/.ideaforge/sessions/<id>/session.json.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a FileStore rooted at baseDir, creating the sessions
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	store := &FileStore{baseDir: baseDir}
	if err := os.MkdirAll(store.sessionsDir(), 0o755); err != nil {
		return nil, errors.Wrap(err, "create sessions directory")
	}
	return store, nil
}

func (fs *FileStore) sessionsDir() string {
	return filepath.Join(fs.baseDir, ".ideaforge", "sessions")
}

func (fs *FileStore) sessionDir(id string) string {
	return filepath.Join(fs.sessionsDir(), id)
}

func (fs *FileStore) sessionFile(id string) string {
	return filepath.Join(fs.sessionDir(id), SessionFileName)
}

// Create makes a new session with a generated ID and persists it.
func (fs *FileStore) Create(ctx context.Context, projectName, stage string) (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:          uuid.NewString(),
		ProjectName: projectName,
		CreatedAt:   now,
		UpdatedAt:   now,
		Stage:       stage,
	}
	if err := fs.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Load retrieves a session by ID. Unparseable session files return an
// ErrSessionCorrupted-wrapped error rather than a zero session.
func (fs *FileStore) Load(ctx context.Context, id string) (*Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.sessionFile(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSessionError("session not found", errors.ErrSessionNotFound).
				WithSessionID(id)
		}
		return nil, errors.Wrap(err, "read session file")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.NewSessionError("session file is not valid JSON", errors.ErrSessionCorrupted).
			WithSessionID(id)
	}
	if s.ID == "" || s.ID != id {
		return nil, errors.NewSessionError("session file does not match its directory", errors.ErrSessionCorrupted).
			WithSessionID(id)
	}
	return &s, nil
}

// Save persists the session atomically and bumps UpdatedAt.
func (fs *FileStore) Save(ctx context.Context, s *Session) error {
	if s.ID == "" {
		return errors.NewValidationError("session ID cannot be empty").WithField("id")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}

	dir := fs.sessionDir(s.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create session directory")
	}
	return atomicWriteFile(filepath.Join(dir, SessionFileName), data, 0o644)
}

// List returns summaries of all stored sessions, most recently updated
// first. Corrupted session files are skipped.
func (fs *FileStore) List(ctx context.Context) ([]Info, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.sessionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read sessions directory")
	}

	var infos []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(fs.sessionFile(entry.Name()))
		if err != nil {
			continue
		}
		var s Session
		if err := json.Unmarshal(data, &s); err != nil || s.ID == "" {
			continue
		}
		infos = append(infos, Info{
			ID:          s.ID,
			ProjectName: s.ProjectName,
			Stage:       s.Stage,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].UpdatedAt.After(infos[j].UpdatedAt)
	})
	return infos, nil
}

// Delete removes a session's directory. Deleting the current session also
// clears the current marker.
func (fs *FileStore) Delete(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	dir := fs.sessionDir(id)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return errors.NewSessionError("session not found", errors.ErrSessionNotFound).
				WithSessionID(id)
		}
		return errors.Wrap(err, "check session directory")
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "delete session directory")
	}

	if current, err := os.ReadFile(fs.currentMarkerPath()); err == nil &&
		strings.TrimSpace(string(current)) == id {
		_ = os.Remove(fs.currentMarkerPath())
	}
	return nil
}

// Exists reports whether a session with the given ID is stored.
func (fs *FileStore) Exists(ctx context.Context, id string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, err := os.Stat(fs.sessionFile(id))
	return err == nil
}

func (fs *FileStore) currentMarkerPath() string {
	return filepath.Join(fs.sessionsDir(), CurrentMarkerName)
}

// Current returns the active session ID from the current marker.
func (fs *FileStore) Current(ctx context.Context) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	data, err := os.ReadFile(fs.currentMarkerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewSessionError("no current session", errors.ErrSessionNotFound)
		}
		return "", errors.Wrap(err, "read current marker")
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrent marks the given session as active. The session must exist.
func (fs *FileStore) SetCurrent(ctx context.Context, id string) error {
	if !fs.Exists(ctx, id) {
		return errors.NewSessionError("session not found", errors.ErrSessionNotFound).
			WithSessionID(id)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	return atomicWriteFile(fs.currentMarkerPath(), []byte(id+"\n"), 0o644)
}

// atomicWriteFile writes data through a temp file in the target directory
// and renames it into place, so the target is never partially written.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errors.Wrap(err, "set permissions")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "rename temp file")
	}

	success = true
	return nil
}
