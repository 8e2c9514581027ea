package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bryanwahyu/scamshield/internal/application"
	domain "github.com/bryanwahyu/scamshield/internal/domain/reports"
	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

// MaxEvidenceBytes caps a single evidence upload.
const MaxEvidenceBytes = 5 << 20

const minDescription = 10

// Service implements use-cases untuk Report
type Service struct {
	Repo domain.Repository
	// Evidence is optional; without it reports carrying evidence are rejected.
	Evidence domain.EvidenceStore
	Clock    application.Clock
}

// Evidence is an uploaded file attached to a report.
type Evidence struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Command untuk submit report
type SubmitCommand struct {
	UserID      string
	ScamType    string
	Channel     string
	Description string
	Contact     string
	Evidence    *Evidence
}

// Submit validasi → upload bukti (opsional) → simpan report
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Report, error) {
	scamType := strings.TrimSpace(cmd.ScamType)
	if scamType == "" {
		return nil, domain.ErrScamTypeRequired
	}
	if !domain.ValidScamType(scamType) {
		return nil, domain.ErrInvalidScamType
	}
	channel, err := scans.ParseContentType(cmd.Channel)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(cmd.Description)
	if utf8.RuneCountInString(desc) < minDescription {
		return nil, domain.ErrDescriptionTooShort
	}

	rep := &domain.Report{
		ID:          domain.ReportID(uuid.New().String()),
		UserID:      cmd.UserID,
		ScamType:    scamType,
		Channel:     channel,
		Description: desc,
		Contact:     strings.TrimSpace(cmd.Contact),
		CreatedAt:   s.Clock.Now().UTC(),
	}

	var evidenceKey string
	if cmd.Evidence != nil {
		key, url, err := s.storeEvidence(ctx, rep, cmd.Evidence)
		if err != nil {
			return nil, err
		}
		evidenceKey, rep.EvidenceURL = key, url
	}

	if err := s.Repo.Save(ctx, rep); err != nil {
		err = fmt.Errorf("saving report: %w", err)
		if evidenceKey != "" {
			// bukti tanpa report dihapus lagi
			if derr := s.Evidence.Delete(context.WithoutCancel(ctx), evidenceKey); derr != nil {
				err = errors.Join(err, fmt.Errorf("removing evidence %s: %w", evidenceKey, derr))
			}
		}
		return nil, err
	}
	return rep, nil
}

// storeEvidence uploads ev and returns its object key and URL.
func (s *Service) storeEvidence(ctx context.Context, rep *domain.Report, ev *Evidence) (string, string, error) {
	if s.Evidence == nil {
		return "", "", domain.ErrEvidenceUnavailable
	}
	if ev.Size > MaxEvidenceBytes {
		return "", "", domain.ErrEvidenceTooLarge
	}
	if !allowedEvidence(ev.ContentType) {
		return "", "", domain.ErrEvidenceType
	}
	key := fmt.Sprintf("reports/%s/%s/%s", keySafe(rep.UserID), rep.ID, evidenceName(ev.Filename))
	url, err := s.Evidence.Put(ctx, key, io.LimitReader(ev.Body, MaxEvidenceBytes), ev.Size, ev.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("uploading evidence: %w", err)
	}
	return key, url, nil
}

// List ambil N report terakhir
func (s *Service) List(ctx context.Context, user string, limit int) ([]*domain.Report, error) {
	list, err := s.Repo.Latest(ctx, user, application.Limit(limit))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Report{}
	}
	return list, nil
}

func allowedEvidence(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "image/") ||
		ct == "application/pdf" ||
		strings.HasPrefix(ct, "text/plain")
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9@._-]+`)

func keySafe(s string) string {
	s = unsafeKeyChars.ReplaceAllString(s, "_")
	if s == "" {
		return "-"
	}
	return s
}

func evidenceName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = keySafe(name)
	if name == "-" || name == "." || name == ".." {
		return "evidence"
	}
	return name
}
