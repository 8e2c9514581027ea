package scans

import "errors"

var (
	ErrNotFound     = errors.New("scan not found")
	ErrTypeRequired = errors.New("content type is required")
	ErrInvalidType  = errors.New("unknown content type")
	ErrTextRequired = errors.New("text is required")
	ErrTextTooShort = errors.New("text must be at least 10 characters")
)
