package reports

import "errors"

var (
	ErrScamTypeRequired    = errors.New("scam_type is required")
	ErrInvalidScamType     = errors.New("unknown scam_type")
	ErrDescriptionTooShort = errors.New("description must be at least 10 characters")
	ErrEvidenceTooLarge    = errors.New("evidence exceeds 5 MiB")
	ErrEvidenceType        = errors.New("evidence must be an image, a PDF or plain text")
	ErrEvidenceUnavailable = errors.New("evidence storage is not configured")
)
