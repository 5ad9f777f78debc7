package service_test

import (
	"context"
	"errors"

	"github.com/sam-pro/catalog/internal/models"
)

// fakeStore is an in-memory stand-in for the slot repository. Slots start
// absent (nil) so Load falls back to the supplied default, mirroring a fresh
// store. Setting saveErr makes every save fail.
type fakeStore struct {
	items    []models.Item
	quick    *models.UniqueData
	settings *models.AppSettings
	users    []models.User
	logo     *string
	logoSet  bool

	saveErr error
}

func (f *fakeStore) LoadItems(_ context.Context, def []models.Item) []models.Item {
	if f.items == nil {
		return def
	}
	return append([]models.Item(nil), f.items...)
}

func (f *fakeStore) SaveItems(_ context.Context, items []models.Item) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.items = append([]models.Item{}, items...)
	return nil
}

func (f *fakeStore) LoadQuickEntry(_ context.Context, def models.UniqueData) models.UniqueData {
	if f.quick == nil {
		return def
	}
	return *f.quick
}

func (f *fakeStore) SaveQuickEntry(_ context.Context, data models.UniqueData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.quick = &data
	return nil
}

func (f *fakeStore) LoadSettings(_ context.Context, def models.AppSettings) models.AppSettings {
	if f.settings == nil {
		return def
	}
	return *f.settings
}

func (f *fakeStore) SaveSettings(_ context.Context, settings models.AppSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = &settings
	return nil
}

func (f *fakeStore) LoadUsers(_ context.Context) []models.User {
	if f.users == nil {
		return []models.User{}
	}
	return append([]models.User(nil), f.users...)
}

func (f *fakeStore) SaveUsers(_ context.Context, users []models.User) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.users = append([]models.User{}, users...)
	return nil
}

func (f *fakeStore) LoadLogo(_ context.Context, def *string) *string {
	if !f.logoSet {
		return def
	}
	return f.logo
}

func (f *fakeStore) SaveLogo(_ context.Context, logo *string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.logo = logo
	f.logoSet = true
	return nil
}

// fakeSessions is an in-memory session store.
type fakeSessions struct {
	current *models.User
	loadErr error
}

func (f *fakeSessions) Load() (*models.User, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.current, nil
}

func (f *fakeSessions) Save(user *models.User) error {
	f.current = user
	return nil
}

func (f *fakeSessions) Clear() error {
	f.current = nil
	return nil
}

var errSaveFailed = errors.New("disk full")

// admin returns an actor holding every capability.
func admin() *models.User {
	return &models.User{
		ID:       "admin-id",
		Username: "admin",
		Permissions: models.UserPermissions{
			CanAdd:            true,
			CanDelete:         true,
			CanChangeSettings: true,
		},
	}
}

// guest returns a synthesized guest actor.
func guest() *models.User {
	return &models.User{
		ID:       models.GuestUserID,
		Username: "visitor " + models.GuestMarker,
	}
}

// reader returns an actor with no capabilities.
func reader() *models.User {
	return &models.User{ID: "reader-id", Username: "reader"}
}
