package service

import (
	"errors"
	"fmt"
	"innovafit/gym-backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDecode       = errors.New("stored record is malformed")
	ErrUnavailable  = errors.New("store unavailable, try again")
	ErrConflict     = errors.New("already exists")

	ErrTagNotFound     = fmt.Errorf("tag %w", ErrNotFound)
	ErrGymNotFound     = fmt.Errorf("gym %w", ErrNotFound)
	ErrMachineNotFound = fmt.Errorf("machine %w", ErrNotFound)
	ErrVideoNotFound   = fmt.Errorf("video %w", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)

	ErrScanSuperseded       = errors.New("scan superseded by a newer scan")
	ErrMediaStorageDisabled = errors.New("media storage is not configured")
)

// invalid wraps ErrInvalidInput with a field-level message.
func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// mapRepoErr translates repository errors, using notFound for a missing record.
func mapRepoErr(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.Is(err, repository.ErrDecode):
		return fmt.Errorf("%w: %v", ErrDecode, err)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
