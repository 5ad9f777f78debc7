package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/masterdata"
	"github.com/sam-pro/catalog/internal/models"
)

// LogoRepository defines the persistence operations over the company logo
// slot.
type LogoRepository interface {
	// LoadLogo returns the stored logo data URL, or def when absent.
	LoadLogo(ctx context.Context, def *string) *string
	// SaveLogo persists the logo; nil means no logo.
	SaveLogo(ctx context.Context, logo *string) error
}

// SettingsService manages the application settings and the company logo.
type SettingsService struct {
	settings SettingsRepository
	logos    LogoRepository
	log      *zap.Logger
}

// NewSettingsService constructs a SettingsService over the given stores.
func NewSettingsService(settings SettingsRepository, logos LogoRepository, log *zap.Logger) *SettingsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettingsService{settings: settings, logos: logos, log: log}
}

// Get returns the current settings; any session may read them (the company
// name and info show on the login screen before authentication).
func (s *SettingsService) Get(ctx context.Context) models.AppSettings {
	return s.settings.LoadSettings(ctx, masterdata.Settings())
}

// Update replaces the settings wholesale. Requires the canChangeSettings
// capability.
func (s *SettingsService) Update(ctx context.Context, actor *models.User, settings models.AppSettings) error {
	if err := requireCanChangeSettings(actor); err != nil {
		return err
	}
	if settings.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrValidation)
	}
	if settings.GuestCredentials.Enabled && settings.GuestCredentials.Username == "" {
		return fmt.Errorf("%w: guest username is required when guest access is enabled", ErrValidation)
	}
	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// GetLogo returns the stored company logo data URL, falling back to the
// published snapshot's logo.
func (s *SettingsService) GetLogo(ctx context.Context) *string {
	return s.logos.LoadLogo(ctx, masterdata.CompanyLogo())
}

// SetLogo stores the company logo as a data URL; nil clears it. Requires the
// canChangeSettings capability.
func (s *SettingsService) SetLogo(ctx context.Context, actor *models.User, logo *string) error {
	if err := requireCanChangeSettings(actor); err != nil {
		return err
	}
	if err := s.logos.SaveLogo(ctx, logo); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
