package service

import (
	"errors"
	"fmt"

	"careconnect-server/internal/repository"
)

// Error taxonomy surfaced to the request boundary. Handlers map these to
// HTTP statuses; anything else becomes a generic 500.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNoCaregiverAvailable = errors.New("no caregiver available")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrInvalidTransition    = errors.New("invalid appointment state for this operation")
	ErrConflict             = errors.New("record was modified concurrently")
)

// asNotFound rewrites a repository miss into the service taxonomy, keeping
// the entity name and id in the message.
func asNotFound(err error, entity, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return err
}

// asConflict rewrites a repository CAS failure into the service taxonomy.
func asConflict(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return ErrConflict
	}
	return err
}
