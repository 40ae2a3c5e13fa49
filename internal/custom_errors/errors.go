package custom_errors

import "errors"

var (
	// Validation failures: a required field is missing or empty.
	ErrValidationFailed    = errors.New("validation failed")
	ErrDescriptionRequired = errors.New("description must be provided")
	ErrTagNameRequired     = errors.New("tag name must be provided")
	ErrPostIDRequired      = errors.New("post id must be provided")

	// Permission failures.
	ErrForbidden = errors.New("operation requires administrator rights")

	// Missing entities.
	ErrPostNotFound = errors.New("post not found")
	ErrTagNotFound  = errors.New("tag not found")
	ErrUserNotFound = errors.New("user not found")

	// Store and collaborator failures.
	ErrDatabaseQuery        = errors.New("database query error")
	ErrDatabaseScan         = errors.New("database scan error")
	ErrNoUpdateRows         = errors.New("no rows to update")
	ErrExternalServiceError = errors.New("external service error")

	// Cache.
	ErrCacheMiss = errors.New("cache miss")
)
