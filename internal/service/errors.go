package service

import "errors"

// Sentinel errors shared across services; controllers map them onto
// HTTP status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateBranch    = errors.New("branch already exists for this institute")
	ErrExamClosed         = errors.New("exam is not available for submission")
	ErrNotDownloadable    = errors.New("exam is not downloadable")
	ErrValidation         = errors.New("validation failed")
)
