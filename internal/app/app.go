// Package app wires configuration, storage, repositories and services into
// the assembled application used by the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/config"
	"github.com/sam-pro/catalog/internal/db"
	"github.com/sam-pro/catalog/internal/repository"
	"github.com/sam-pro/catalog/internal/service"
)

// databaseFile is the SQLite file holding the durable slots.
const databaseFile = "catalog.db"

// App bundles the application services.
type App struct {
	Auth       *service.AuthService
	Catalog    *service.CatalogService
	QuickEntry *service.QuickEntryService
	Users      *service.UserService
	Settings   *service.SettingsService
	Backup     *service.BackupService
	Log        *zap.Logger

	db *sql.DB
}

// New builds the application: it ensures the state directory exists, opens
// the slot database, constructs the repositories and services, and runs the
// first-run administrator bootstrap.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := db.InitSQLite(filepath.Join(cfg.DataDir, databaseFile))
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	slots := repository.NewSQLiteSlotRepository(database, log)
	sessions := repository.NewFileSessionStore(cfg.DataDir)

	a := &App{
		Auth:       service.NewAuthService(slots, slots, sessions, log),
		Catalog:    service.NewCatalogService(slots, log),
		QuickEntry: service.NewQuickEntryService(slots, log),
		Users:      service.NewUserService(slots, sessions, log),
		Settings:   service.NewSettingsService(slots, slots, log),
		Backup:     service.NewBackupService(slots, log),
		Log:        log,
		db:         database,
	}

	if _, err := a.Auth.Bootstrap(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("bootstrap users: %w", err)
	}

	return a, nil
}

// Close releases the underlying database handle.
func (a *App) Close() error {
	return a.db.Close()
}
