package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrUnauthorized = errors.New("unauthorized access")

	// Note errors
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteConflict = errors.New("note id already in use")
)
