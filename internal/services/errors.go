package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrNoContactEmail     = errors.New("job has no contact email")
	ErrLLMUnavailable     = errors.New("job extraction is not configured")
)
