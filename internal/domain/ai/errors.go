package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMalformedOutput means the provider answered but not with the expected JSON object.
var ErrMalformedOutput = errors.New("ai returned malformed output")

// ErrEmptyResponse means the provider returned no choices.
var ErrEmptyResponse = errors.New("ai returned no choices")
