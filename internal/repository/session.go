package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sam-pro/catalog/internal/models"
)

// sessionFile is the volatile slot holding the active session between CLI
// invocations. It is the counterpart of the durable slots: created at login,
// removed at logout, never part of a backup.
const sessionFile = "session.json"

// FileSessionStore persists the active session as a small JSON file in the
// state directory.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore returns a session store rooted at dir.
func NewFileSessionStore(dir string) *FileSessionStore {
	return &FileSessionStore{path: filepath.Join(dir, sessionFile)}
}

// Load returns the active session user, or nil when no session exists.
// A corrupt session file counts as no session.
func (s *FileSessionStore) Load() (*models.User, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// Save writes the session user.
func (s *FileSessionStore) Save(user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
