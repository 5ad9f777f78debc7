// Package repository provides persistence over the named storage slots that
// hold the application state as JSON blobs, plus the volatile session slot.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/models"
)

// Slot names, kept identical to the original deployment's localStorage keys
// so an exported dataset from either side round-trips.
const (
	SlotItems      = "samProItems"
	SlotQuickEntry = "samProQuickEntry"
	SlotSettings   = "samProSettings"
	SlotUsers      = "samProUsers"
	SlotLogo       = "samProLogo"
)

// SQLiteSlotRepository reads and writes named JSON slots in a SQLite table.
// Loads fail soft: a missing slot, an unreachable store or malformed JSON
// yields the caller-supplied default, never an error.
type SQLiteSlotRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Log records fail-soft load degradations and other diagnostics.
	Log *zap.Logger
}

// NewSQLiteSlotRepository creates a slot repository over the given database
// handle. log may be nil, in which case diagnostics are dropped.
func NewSQLiteSlotRepository(db *sql.DB, log *zap.Logger) *SQLiteSlotRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLiteSlotRepository{DB: db, Log: log}
}

// loadRaw fetches the JSON text of a slot. The second return value is false
// when the slot is absent or the store is unavailable.
func (r *SQLiteSlotRepository) loadRaw(ctx context.Context, slot string) ([]byte, bool) {
	var value string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT value FROM slots WHERE name = ?`,
		slot,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		r.Log.Warn("slot load failed, using default", zap.String("slot", slot), zap.Error(err))
		return nil, false
	}
	return []byte(value), true
}

// saveRaw upserts the JSON text of a slot.
func (r *SQLiteSlotRepository) saveRaw(ctx context.Context, slot string, value []byte) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		slot, string(value),
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}

// load unmarshals a slot into dst, reporting whether dst now holds stored
// data. Malformed stored JSON counts as absent.
func (r *SQLiteSlotRepository) load(ctx context.Context, slot string, dst any) bool {
	raw, ok := r.loadRaw(ctx, slot)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.Log.Warn("slot holds malformed JSON, using default", zap.String("slot", slot), zap.Error(err))
		return false
	}
	return true
}

// save marshals v and writes it to the slot.
func (r *SQLiteSlotRepository) save(ctx context.Context, slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", slot, err)
	}
	return r.saveRaw(ctx, slot, raw)
}

// LoadItems returns the stored item catalog, or def when absent.
func (r *SQLiteSlotRepository) LoadItems(ctx context.Context, def []models.Item) []models.Item {
	var items []models.Item
	if !r.load(ctx, SlotItems, &items) || items == nil {
		return def
	}
	return items
}

// SaveItems persists the item catalog.
func (r *SQLiteSlotRepository) SaveItems(ctx context.Context, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	return r.save(ctx, SlotItems, items)
}

// LoadQuickEntry returns the stored quick-entry collections, or def when
// absent.
func (r *SQLiteSlotRepository) LoadQuickEntry(ctx context.Context, def models.UniqueData) models.UniqueData {
	var data models.UniqueData
	if !r.load(ctx, SlotQuickEntry, &data) {
		return def
	}
	return data
}

// SaveQuickEntry persists the quick-entry collections.
func (r *SQLiteSlotRepository) SaveQuickEntry(ctx context.Context, data models.UniqueData) error {
	return r.save(ctx, SlotQuickEntry, data)
}

// LoadSettings returns the stored settings, or def when absent.
func (r *SQLiteSlotRepository) LoadSettings(ctx context.Context, def models.AppSettings) models.AppSettings {
	var settings models.AppSettings
	if !r.load(ctx, SlotSettings, &settings) {
		return def
	}
	return settings
}

// SaveSettings persists the settings.
func (r *SQLiteSlotRepository) SaveSettings(ctx context.Context, settings models.AppSettings) error {
	return r.save(ctx, SlotSettings, settings)
}

// LoadUsers returns the registered user accounts; an absent slot is an empty
// registry.
func (r *SQLiteSlotRepository) LoadUsers(ctx context.Context) []models.User {
	var users []models.User
	if !r.load(ctx, SlotUsers, &users) || users == nil {
		return []models.User{}
	}
	return users
}

// SaveUsers persists the user registry.
func (r *SQLiteSlotRepository) SaveUsers(ctx context.Context, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return r.save(ctx, SlotUsers, users)
}

// LoadLogo returns the stored company logo data URL, or def when absent.
// The slot legitimately holds JSON null for "no logo".
func (r *SQLiteSlotRepository) LoadLogo(ctx context.Context, def *string) *string {
	raw, ok := r.loadRaw(ctx, SlotLogo)
	if !ok {
		return def
	}
	var logo *string
	if err := json.Unmarshal(raw, &logo); err != nil {
		r.Log.Warn("logo slot holds malformed JSON, using default", zap.Error(err))
		return def
	}
	return logo
}

// SaveLogo persists the company logo data URL; nil stores JSON null.
func (r *SQLiteSlotRepository) SaveLogo(ctx context.Context, logo *string) error {
	return r.save(ctx, SlotLogo, logo)
}
