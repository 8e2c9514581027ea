package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/scamshield/internal/domain/reports"
)

type ReportRepository struct{ db *sql.DB }

func NewReportRepository(db *sql.DB) *ReportRepository { return &ReportRepository{db: db} }

// Save inserts or updates a report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO scam_reports
  (id, user_id, scam_type, channel, description, contact, evidence_url, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (id) DO UPDATE SET
  description=EXCLUDED.description,
  contact=EXCLUDED.contact,
  evidence_url=EXCLUDED.evidence_url;`
	created := rep.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		rep.ID, stringOrDash(rep.UserID), rep.ScamType, rep.Channel,
		rep.Description, rep.Contact, rep.EvidenceURL, created,
	)
	return err
}

// Latest returns the newest reports of a user
func (r *ReportRepository) Latest(ctx context.Context, user string, limit int) ([]*domain.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, user_id, scam_type, channel, description, contact, evidence_url, created_at
FROM scam_reports
WHERE user_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, stringOrDash(user), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Report{}
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.ScamType, &rep.Channel,
			&rep.Description, &rep.Contact, &rep.EvidenceURL, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
