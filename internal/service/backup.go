package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/masterdata"
	"github.com/sam-pro/catalog/internal/models"
)

// BackupRepository is the union of slot operations the backup component
// needs: everything except the user registry, which is never part of a
// backup document.
type BackupRepository interface {
	CatalogRepository
	QuickEntryRepository
	SettingsRepository
	LogoRepository
}

// BackupService serializes the full application state to a portable document
// and restores it wholesale.
type BackupService struct {
	repo BackupRepository
	log  *zap.Logger
}

// NewBackupService constructs a BackupService using the provided repository.
func NewBackupService(repo BackupRepository, log *zap.Logger) *BackupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BackupService{repo: repo, log: log}
}

// Export snapshots the current items, quick-entry data, settings and logo,
// reading directly from the persistent store rather than any in-memory
// state. Guests cannot export the registered dataset.
func (s *BackupService) Export(ctx context.Context, actor *models.User) (models.BackupData, error) {
	if err := requireActor(actor); err != nil {
		return models.BackupData{}, err
	}
	if actor.IsGuest() {
		return models.BackupData{}, ErrPermissionDenied
	}
	return models.BackupData{
		Items:          s.repo.LoadItems(ctx, masterdata.Items()),
		QuickEntryData: s.repo.LoadQuickEntry(ctx, masterdata.QuickEntryData()),
		Settings:       s.repo.LoadSettings(ctx, masterdata.Settings()),
		CompanyLogo:    s.repo.LoadLogo(ctx, masterdata.CompanyLogo()),
	}, nil
}

// Import validates and applies a backup document, wholesale-replacing all
// four slots. The document must carry items as an array and present
// quickEntryData and settings fields; deeper shapes are not validated, per
// the original import contract. A malformed document is rejected atomically
// with ErrImportMalformed and nothing is applied. Requires the
// canChangeSettings capability.
func (s *BackupService) Import(ctx context.Context, actor *models.User, doc []byte) (models.BackupData, error) {
	if err := requireCanChangeSettings(actor); err != nil {
		return models.BackupData{}, err
	}

	var probe struct {
		Items          json.RawMessage `json:"items"`
		QuickEntryData json.RawMessage `json:"quickEntryData"`
		Settings       json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	var items []models.Item
	if probe.Items == nil || json.Unmarshal(probe.Items, &items) != nil || items == nil {
		return models.BackupData{}, fmt.Errorf("%w: items must be an array", ErrImportMalformed)
	}
	if isAbsent(probe.QuickEntryData) {
		return models.BackupData{}, fmt.Errorf("%w: quickEntryData is required", ErrImportMalformed)
	}
	if isAbsent(probe.Settings) {
		return models.BackupData{}, fmt.Errorf("%w: settings is required", ErrImportMalformed)
	}

	var data models.BackupData
	if err := json.Unmarshal(doc, &data); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	data.Items = items

	if err := s.repo.SaveItems(ctx, data.Items); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.repo.SaveQuickEntry(ctx, data.QuickEntryData); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.repo.SaveSettings(ctx, data.Settings); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.repo.SaveLogo(ctx, data.CompanyLogo); err != nil {
		return models.BackupData{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.log.Info("backup imported", zap.Int("items", len(data.Items)))
	return data, nil
}

// isAbsent reports whether a probed field was missing or JSON null.
func isAbsent(raw json.RawMessage) bool {
	return raw == nil || string(raw) == "null"
}
