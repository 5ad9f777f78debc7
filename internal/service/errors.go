// Package service implements the application's business logic: the
// authentication gate, the permission-gated item catalog, the quick-entry
// value registry, the user registry, settings and backup/restore. Every
// mutation is a complete read-modify-write of the relevant collection
// followed by a persist of that collection.
package service

import (
	"errors"

	"github.com/sam-pro/catalog/internal/models"
)

var (
	// ErrInvalidCredentials is returned when no registered user and no
	// enabled guest account matches the supplied username and password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotLoggedIn is returned when an operation requires an active
	// session and none exists.
	ErrNotLoggedIn = errors.New("no active session")

	// ErrPermissionDenied is returned when the acting session lacks the
	// capability a mutation requires.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidation is returned (wrapped, with field context) when entry
	// validation fails: missing required item fields, non-positive price,
	// duplicate quick-entry value, duplicate username at creation.
	ErrValidation = errors.New("validation failed")

	// ErrImportMalformed is returned when a backup document is missing
	// required top-level fields. Nothing is applied in that case.
	ErrImportMalformed = errors.New("backup document is malformed")

	// ErrStorageUnavailable wraps persistence write failures. The in-memory
	// state the caller was working with remains valid.
	ErrStorageUnavailable = errors.New("persistent storage unavailable")

	// ErrSelfDeleteRefused is returned when a user attempts to delete the
	// account of the active session.
	ErrSelfDeleteRefused = errors.New("cannot delete the active account")

	// ErrItemNotFound is returned when a detail lookup misses.
	ErrItemNotFound = errors.New("item not found")
)

// requireActor rejects operations performed without a session.
func requireActor(actor *models.User) error {
	if actor == nil {
		return ErrNotLoggedIn
	}
	return nil
}

// requireCanAdd gates create/edit mutations. Guest sessions are refused
// outright, independent of their (always false) permission flags.
func requireCanAdd(actor *models.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.IsGuest() || !actor.Permissions.CanAdd {
		return ErrPermissionDenied
	}
	return nil
}

// requireCanDelete gates delete mutations.
func requireCanDelete(actor *models.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.IsGuest() || !actor.Permissions.CanDelete {
		return ErrPermissionDenied
	}
	return nil
}

// requireCanChangeSettings gates settings and user-management mutations.
func requireCanChangeSettings(actor *models.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.IsGuest() || !actor.Permissions.CanChangeSettings {
		return ErrPermissionDenied
	}
	return nil
}
