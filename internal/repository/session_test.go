package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sam-pro/catalog/internal/models"
)

func TestFileSessionStore_RoundTrip(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())

	user := &models.User{
		ID:          "u1",
		Username:    "sam",
		Permissions: models.UserPermissions{CanAdd: true},
	}
	if err := store.Save(user); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.ID != "u1" || !loaded.Permissions.CanAdd {
		t.Fatalf("loaded = %+v; want the saved session", loaded)
	}
}

func TestFileSessionStore_AbsentIsNoSession(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("loaded = %+v; want nil", loaded)
	}
}

func TestFileSessionStore_CorruptIsNoSession(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	store := NewFileSessionStore(dir)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("loaded = %+v; want nil for a corrupt file", loaded)
	}
}

func TestFileSessionStore_Clear(t *testing.T) {
	store := NewFileSessionStore(t.TempDir())

	if err := store.Save(&models.User{ID: "u1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if loaded, _ := store.Load(); loaded != nil {
		t.Fatal("session survived clear")
	}

	// Clearing an absent session is a no-op.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
