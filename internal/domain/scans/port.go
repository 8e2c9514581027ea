package scans

import (
	"context"
	"time"
)

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, s *Scan) error
	Get(ctx context.Context, user string, id ScanID) (*Scan, error)
	Paginate(ctx context.Context, user string, page, pageSize int) (PaginatedResult, error)
	Summary(ctx context.Context, user string, since time.Time) (Summary, error)
}
