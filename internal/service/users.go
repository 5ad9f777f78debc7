package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sam-pro/catalog/internal/models"
)

// UserService implements the user registry: account CRUD with the invariants
// that usernames are unique at creation time and the active account cannot
// delete itself.
type UserService struct {
	users    UserRepository
	sessions SessionStore
	log      *zap.Logger
}

// NewUserService constructs a UserService over the given stores.
func NewUserService(users UserRepository, sessions SessionStore, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, sessions: sessions, log: log}
}

// List returns the registered accounts. Requires the canChangeSettings
// capability, which gates the whole user-management surface.
func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requireCanChangeSettings(actor); err != nil {
		return nil, err
	}
	return s.users.LoadUsers(ctx), nil
}

// Add creates a new account with a fresh id. Usernames are rejected when
// empty or already taken (case-sensitive exact match); uniqueness is only
// enforced here, at creation time. The password is hashed before storage.
// Requires the canChangeSettings capability.
func (s *UserService) Add(ctx context.Context, actor *models.User, user models.User) (*models.User, error) {
	if err := requireCanChangeSettings(actor); err != nil {
		return nil, err
	}

	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if user.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	users := s.users.LoadUsers(ctx)
	for _, u := range users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q already exists", ErrValidation, user.Username)
		}
	}

	hash, err := HashPassword(user.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.ID = uuid.NewString()
	user.Password = hash

	if err := s.users.SaveUsers(ctx, append(users, user)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.log.Info("user added", zap.String("username", user.Username))
	return &user, nil
}

// Update replaces the account whose id matches; a missing id is a silent
// no-op. An empty password keeps the stored one; a new password is hashed.
// When the replaced account is the active session, the session is refreshed
// immediately so permission changes take effect without re-login. Requires
// the canChangeSettings capability.
func (s *UserService) Update(ctx context.Context, actor *models.User, user models.User) error {
	if err := requireCanChangeSettings(actor); err != nil {
		return err
	}

	users := s.users.LoadUsers(ctx)
	var updated *models.User
	for i := range users {
		if users[i].ID != user.ID {
			continue
		}
		switch user.Password {
		case "", users[i].Password:
			// Blank or unchanged keeps the stored credential.
			user.Password = users[i].Password
		default:
			hash, err := HashPassword(user.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.Password = hash
		}
		users[i] = user
		updated = &users[i]
		break
	}
	if updated == nil {
		return nil
	}

	if err := s.users.SaveUsers(ctx, users); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if actor.ID == updated.ID {
		if err := s.sessions.Save(updated); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	return nil
}

// Delete removes the account whose id matches. Deleting the active session's
// own account is refused with ErrSelfDeleteRefused. Requires the
// canChangeSettings capability.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id string) error {
	if err := requireCanChangeSettings(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return ErrSelfDeleteRefused
	}

	users := s.users.LoadUsers(ctx)
	kept := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if err := s.users.SaveUsers(ctx, kept); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
