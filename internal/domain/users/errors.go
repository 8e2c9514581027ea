package users

import "errors"

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrNameRequired     = errors.New("full name is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrConfirmRequired  = errors.New("please confirm your password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInvalidSession   = errors.New("invalid or expired session")
)
