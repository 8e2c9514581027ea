package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/scamshield/internal/domain/scans"
)

type ScanRepository struct{ db *sql.DB }

func NewScanRepository(db *sql.DB) *ScanRepository { return &ScanRepository{db: db} }

const scanColumns = `id, user_id, content_type, snippet, risk_level, risk_score,
       explanation, indicators, source, offline, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*domain.Scan, error) {
	var s domain.Scan
	var indicators pq.StringArray
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Type, &s.Snippet, &s.RiskLevel, &s.RiskScore,
		&s.Explanation, &indicators, &s.Source, &s.Offline, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Indicators = []string(indicators)
	if s.Indicators == nil {
		s.Indicators = []string{}
	}
	return &s, nil
}

// Save insert/update Scan record
func (r *ScanRepository) Save(ctx context.Context, s *domain.Scan) error {
	const q = `
INSERT INTO scam_scans
(id, user_id, content_type, snippet, risk_level, risk_score,
 explanation, indicators, source, offline, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
 risk_level = EXCLUDED.risk_level,
 risk_score = EXCLUDED.risk_score,
 explanation = EXCLUDED.explanation,
 indicators = EXCLUDED.indicators,
 source = EXCLUDED.source,
 offline = EXCLUDED.offline;`

	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	indicators := s.Indicators
	if indicators == nil {
		indicators = []string{}
	}
	_, err := r.db.ExecContext(ctx, q,
		s.ID, stringOrDash(s.UserID), s.Type, s.Snippet, s.RiskLevel, s.RiskScore,
		s.Explanation, pq.Array(indicators), s.Source, s.Offline, created,
	)
	return err
}

// Get by ID + user
func (r *ScanRepository) Get(ctx context.Context, user string, id domain.ScanID) (*domain.Scan, error) {
	q := `SELECT ` + scanColumns + ` FROM scam_scans WHERE user_id=$1 AND id=$2 LIMIT 1;`
	s, err := scanRow(r.db.QueryRowContext(ctx, q, stringOrDash(user), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

// Paginate with offset + limit; total comes from a window count
func (r *ScanRepository) Paginate(ctx context.Context, user string, page, pageSize int) (domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := domain.Offset(page, pageSize)
	user = stringOrDash(user)

	q := `SELECT ` + scanColumns + `
FROM scam_scans
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3;`
	rows, err := r.db.QueryContext(ctx, q, user, pageSize, offset)
	if err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var out []*domain.Scan
	for rows.Next() {
		s, err := scanRow(rows)
		if err != nil {
			return domain.PaginatedResult{}, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scam_scans WHERE user_id=$1`, user).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}
	return domain.NewPaginatedResult(out, page, pageSize, total), nil
}

// Summary counts scans per risk level since a point in time
func (r *ScanRepository) Summary(ctx context.Context, user string, since time.Time) (domain.Summary, error) {
	const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE risk_level = 'High'),
       COUNT(*) FILTER (WHERE risk_level = 'Medium'),
       COUNT(*) FILTER (WHERE risk_level = 'Low')
FROM scam_scans
WHERE user_id=$1 AND created_at >= $2;`
	var s domain.Summary
	if err := r.db.QueryRowContext(ctx, q, stringOrDash(user), since).Scan(&s.TotalScans, &s.High, &s.Medium, &s.Low); err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}
