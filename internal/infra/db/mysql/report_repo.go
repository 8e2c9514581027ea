package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/scamshield/internal/domain/reports"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a report record
func (r *ReportRepository) Save(ctx context.Context, rep *domain.Report) error {
	const q = `
INSERT INTO scam_reports
  (id, user_id, scam_type, channel, description, contact, evidence_url, created_at)
VALUES (?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  description=VALUES(description), contact=VALUES(contact), evidence_url=VALUES(evidence_url);
`
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
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ?;
`
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
