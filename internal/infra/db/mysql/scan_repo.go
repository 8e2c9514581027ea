package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/scamshield/internal/domain/scans"
)

type ScanRepository struct {
	db *sql.DB
}

func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

const scanColumns = `id, user_id, content_type, snippet, risk_level, risk_score,
       explanation, indicators_json, source, offline, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (*domain.Scan, error) {
	var s domain.Scan
	var indicators string
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Type, &s.Snippet, &s.RiskLevel, &s.RiskScore,
		&s.Explanation, &indicators, &s.Source, &s.Offline, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.Indicators = decodeIndicators(indicators)
	return &s, nil
}

// Save insert/update Scan record
func (r *ScanRepository) Save(ctx context.Context, s *domain.Scan) error {
	const q = `
INSERT INTO scam_scans
(id, user_id, content_type, snippet, risk_level, risk_score,
 explanation, indicators_json, source, offline, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 risk_level=VALUES(risk_level), risk_score=VALUES(risk_score),
 explanation=VALUES(explanation), indicators_json=VALUES(indicators_json),
 source=VALUES(source), offline=VALUES(offline);
`
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		s.ID, stringOrDash(s.UserID), s.Type, s.Snippet, s.RiskLevel, s.RiskScore,
		s.Explanation, encodeIndicators(s.Indicators), s.Source, s.Offline, created,
	)
	return err
}

// Get by ID + user
func (r *ScanRepository) Get(ctx context.Context, user string, id domain.ScanID) (*domain.Scan, error) {
	q := `SELECT ` + scanColumns + ` FROM scam_scans WHERE user_id=? AND id=? LIMIT 1;`
	s, err := scanRow(r.db.QueryRowContext(ctx, q, stringOrDash(user), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

// Paginate with offset + limit (classic pagination)
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
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;`
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scam_scans WHERE user_id=?`, user).Scan(&total); err != nil {
		return domain.PaginatedResult{}, fmt.Errorf("getting total count: %w", err)
	}
	return domain.NewPaginatedResult(out, page, pageSize, total), nil
}

// Summary counts scans per risk level since a point in time
func (r *ScanRepository) Summary(ctx context.Context, user string, since time.Time) (domain.Summary, error) {
	const q = `
SELECT COUNT(*) AS total_scans,
       COALESCE(SUM(risk_level='High'),0)   AS high,
       COALESCE(SUM(risk_level='Medium'),0) AS medium,
       COALESCE(SUM(risk_level='Low'),0)    AS low
FROM scam_scans
WHERE user_id=? AND created_at >= ?;
`
	var s domain.Summary
	if err := r.db.QueryRowContext(ctx, q, stringOrDash(user), since).Scan(&s.TotalScans, &s.High, &s.Medium, &s.Low); err != nil {
		return domain.Summary{}, err
	}
	return s, nil
}
