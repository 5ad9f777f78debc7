package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sam-pro/catalog/internal/masterdata"
	"github.com/sam-pro/catalog/internal/models"
)

// UserRepository defines the persistence operations over the user registry.
type UserRepository interface {
	// LoadUsers returns the registered accounts; never nil.
	LoadUsers(ctx context.Context) []models.User
	// SaveUsers persists the full registry.
	SaveUsers(ctx context.Context, users []models.User) error
}

// SettingsRepository defines the persistence operations over the settings
// slot.
type SettingsRepository interface {
	// LoadSettings returns the stored settings, or def when absent.
	LoadSettings(ctx context.Context, def models.AppSettings) models.AppSettings
	// SaveSettings persists the settings.
	SaveSettings(ctx context.Context, settings models.AppSettings) error
}

// SessionStore holds the active session between invocations.
type SessionStore interface {
	// Load returns the session user, or nil when no session exists.
	Load() (*models.User, error)
	// Save establishes the session.
	Save(user *models.User) error
	// Clear ends the session; idempotent.
	Clear() error
}

// AuthService implements the authentication gate: login, logout, session
// lookup and the first-run administrator bootstrap.
type AuthService struct {
	users    UserRepository
	settings SettingsRepository
	sessions SessionStore
	log      *zap.Logger
}

// NewAuthService constructs an AuthService over the given stores.
func NewAuthService(users UserRepository, settings SettingsRepository, sessions SessionStore, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, settings: settings, sessions: sessions, log: log}
}

// Bootstrap materializes the default administrator when the user registry is
// empty, so the system is always usable. It returns the created account, or
// nil when the registry already had users.
func (s *AuthService) Bootstrap(ctx context.Context) (*models.User, error) {
	users := s.users.LoadUsers(ctx)
	if len(users) > 0 {
		return nil, nil
	}

	hash, err := HashPassword(models.DefaultAdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}
	admin := models.User{
		ID:       uuid.NewString(),
		Username: models.DefaultAdminUsername,
		Password: hash,
		Permissions: models.UserPermissions{
			CanAdd:            true,
			CanDelete:         true,
			CanChangeSettings: true,
		},
	}
	if err := s.users.SaveUsers(ctx, []models.User{admin}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.log.Info("bootstrapped default administrator", zap.String("username", admin.Username))
	return &admin, nil
}

// Login validates the credentials against the registered users first, then
// against the configured guest account when enabled, and establishes the
// session on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	for _, u := range s.users.LoadUsers(ctx) {
		if u.Username == username && VerifyPassword(u.Password, password) {
			user := u
			if err := s.sessions.Save(&user); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
			return &user, nil
		}
	}

	guest := s.settings.LoadSettings(ctx, masterdata.Settings()).GuestCredentials
	if guest.Enabled && guest.Username == username && guest.Password == password {
		user := models.User{
			ID:       models.GuestUserID,
			Username: username + " " + models.GuestMarker,
			// The session never holds the guest password.
			Password:    "",
			Permissions: models.UserPermissions{},
		}
		if err := s.sessions.Save(&user); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		return &user, nil
	}

	return nil, ErrInvalidCredentials
}

// Logout clears the session unconditionally; logging out without a session
// is a no-op.
func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

// Current returns the active session user, or ErrNotLoggedIn.
func (s *AuthService) Current() (*models.User, error) {
	user, err := s.sessions.Load()
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// HashPassword hashes a password for storage. See VerifyPassword for the
// compatibility contract.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a supplied password against the stored credential.
// Accounts created here store bcrypt hashes; datasets imported from the
// original deployment store plaintext, which is compared in constant time so
// those accounts keep working.
func VerifyPassword(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
