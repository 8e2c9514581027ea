package scans

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/bryanwahyu/scamshield/internal/application"
	"github.com/bryanwahyu/scamshield/internal/domain/ai"
	"github.com/bryanwahyu/scamshield/internal/domain/scanerrors"
	domain "github.com/bryanwahyu/scamshield/internal/domain/scans"
)

// MinTextLength is the shortest text accepted for scoring, in runes.
const MinTextLength = 10

// Service implements use-cases untuk Scan
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Repo   domain.Repository
	Errors scanerrors.Repository
	// Predictor is optional. When nil every scan is scored by the heuristic.
	Predictor ai.Predictor
	Policy    domain.Policy
	Clock     application.Clock
	Logger    *slog.Logger
}

//
// ==== USE CASES ====
//

// Command untuk predict
type PredictCommand struct {
	UserID string
	Type   string
	Text   string
}

// PredictResult is the scored response plus where it came from.
type PredictResult struct {
	ID string `json:"id"`
	domain.Result
	Source  domain.Source `json:"source"`
	Offline bool          `json:"offline"`
}

// Predict validasi input → scoring (model kalau ada, fallback heuristik) → simpan ke repo
func (s *Service) Predict(ctx context.Context, cmd PredictCommand) (PredictResult, error) {
	ct, err := domain.ParseContentType(cmd.Type)
	if err != nil {
		return PredictResult{}, err
	}
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return PredictResult{}, domain.ErrTextRequired
	}
	if utf8.RuneCountInString(text) < MinTextLength {
		return PredictResult{}, domain.ErrTextTooShort
	}

	now := s.Clock.Now().UTC()
	id := uuid.New().String()

	res, source, offline := s.evaluate(ctx, cmd.UserID, id, ct, text, now)

	scan := &domain.Scan{
		ID:          domain.ScanID(id),
		UserID:      cmd.UserID,
		Type:        ct,
		Snippet:     domain.Snippet(text),
		RiskLevel:   res.RiskLevel,
		RiskScore:   res.RiskScore,
		Explanation: res.Explanation,
		Indicators:  res.Indicators,
		Source:      source,
		Offline:     offline,
		CreatedAt:   now,
	}
	if err := s.Repo.Save(ctx, scan); err != nil {
		return PredictResult{}, fmt.Errorf("saving scan: %w", err)
	}

	return PredictResult{ID: id, Result: res, Source: source, Offline: offline}, nil
}

func (s *Service) evaluate(ctx context.Context, user, id string, ct domain.ContentType, text string, now time.Time) (domain.Result, domain.Source, bool) {
	if s.Predictor == nil {
		return s.Policy.Evaluate(ct, text, now), domain.SourceHeuristic, false
	}

	a, err := s.Predictor.Predict(ctx, string(ct), text)
	if err != nil {
		s.logger().Warn("model backend failed, using heuristic",
			"backend", s.Predictor.Name(), "scan_id", id, "err", err)
		s.recordFailure(ctx, user, id, ct, text, err, now)
		return s.Policy.Evaluate(ct, text, now), domain.SourceHeuristic, true
	}
	return s.normalize(a, ct, now), domain.SourceModel, false
}

// normalize bounds a model verdict with the same policy the heuristic uses,
// so risk_level always agrees with risk_score.
func (s *Service) normalize(a ai.Assessment, ct domain.ContentType, now time.Time) domain.Result {
	score := s.Policy.Clamp(a.RiskScore)
	level := s.Policy.Level(score)
	explanation := strings.TrimSpace(a.Explanation)
	if explanation == "" {
		explanation = domain.Explanation(level)
	}
	indicators := make([]string, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		if ind = strings.TrimSpace(ind); ind != "" {
			indicators = append(indicators, ind)
		}
	}
	return domain.Result{
		RiskLevel:   level,
		RiskScore:   score,
		Explanation: explanation,
		Indicators:  indicators,
		Type:        ct,
		CreatedAt:   now,
	}
}

func (s *Service) recordFailure(ctx context.Context, user, id string, ct domain.ContentType, text string, cause error, now time.Time) {
	if s.Errors == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"content_type": ct,
		"text_length":  utf8.RuneCountInString(text),
	})
	e := &scanerrors.ScanError{
		UserID:      user,
		ScanID:      id,
		Backend:     s.Predictor.Name(),
		Phase:       scanerrors.PhasePredict,
		Message:     cause.Error(),
		DetailsJSON: string(details),
		CreatedAt:   now,
	}
	// context.WithoutCancel: a deadline on the model call must not drop the audit row
	if err := s.Errors.Save(context.WithoutCancel(ctx), e); err != nil {
		s.logger().Error("saving scan error", "scan_id", id, "err", err)
	}
}

// History ambil riwayat scan per halaman, terbaru dulu
func (s *Service) History(ctx context.Context, user string, page, pageSize int) (domain.PaginatedResult, error) {
	page, pageSize = application.Page(page, pageSize)
	return s.Repo.Paginate(ctx, user, page, pageSize)
}

// Get ambil 1 scan by id
func (s *Service) Get(ctx context.Context, user string, id domain.ScanID) (*domain.Scan, error) {
	return s.Repo.Get(ctx, user, id)
}

// Failures lists model backend errors recorded for one of the user's scans.
func (s *Service) Failures(ctx context.Context, user string, id domain.ScanID) ([]*scanerrors.ScanError, error) {
	if _, err := s.Repo.Get(ctx, user, id); err != nil {
		return nil, err
	}
	if s.Errors == nil {
		return []*scanerrors.ScanError{}, nil
	}
	list, err := s.Errors.ListByScan(ctx, user, string(id), 50)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*scanerrors.ScanError{}
	}
	return list, nil
}

// Summary rekap hasil scan N hari terakhir
func (s *Service) Summary(ctx context.Context, user string, sinceDays int) (domain.Summary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	if sinceDays > 365 {
		sinceDays = 365
	}
	since := s.Clock.Now().UTC().AddDate(0, 0, -sinceDays)
	return s.Repo.Summary(ctx, user, since)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
