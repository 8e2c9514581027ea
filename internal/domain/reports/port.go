package reports

import (
	"context"
	"io"
)

// Repository port for persisting and listing reports
type Repository interface {
	Save(ctx context.Context, r *Report) error
	Latest(ctx context.Context, user string, limit int) ([]*Report, error)
}

// EvidenceStore port (interface untuk penyimpanan bukti)
type EvidenceStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes an object written by Put. A missing key is not an error.
	Delete(ctx context.Context, key string) error
}
