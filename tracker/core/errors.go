package core

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors below wrap one of these, so callers can match
// either the kind or the exact error with errors.Is.
var (
	ErrValidation = errors.New("invalid args")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// Users errors
var (
	ErrUserInvalidArgs   = fmt.Errorf("user %w", ErrValidation)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Projects errors
var (
	ErrProjectInvalidArgs = fmt.Errorf("project %w", ErrValidation)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
)

// Tasks errors
var (
	ErrTaskInvalidArgs = fmt.Errorf("task %w", ErrValidation)
)

// Sessions errors
var (
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)
)
