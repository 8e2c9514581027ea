// Package memory holds process-local repositories used when no database is
// configured. Everything is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bryanwahyu/scamshield/internal/domain/reports"
	"github.com/bryanwahyu/scamshield/internal/domain/scanerrors"
	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

// ScanRepository implements scans.Repository.
type ScanRepository struct {
	mu    sync.RWMutex
	items map[scans.ScanID]*scans.Scan
}

func NewScanRepository() *ScanRepository {
	return &ScanRepository{items: make(map[scans.ScanID]*scans.Scan)}
}

func (r *ScanRepository) Save(_ context.Context, s *scans.Scan) error {
	cp := cloneScan(s)
	r.mu.Lock()
	r.items[s.ID] = cp
	r.mu.Unlock()
	return nil
}

func (r *ScanRepository) Get(_ context.Context, user string, id scans.ScanID) (*scans.Scan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok || s.UserID != user {
		return nil, scans.ErrNotFound
	}
	return cloneScan(s), nil
}

// cloneScan copies s including its indicator slice.
func cloneScan(s *scans.Scan) *scans.Scan {
	cp := *s
	if s.Indicators != nil {
		cp.Indicators = append(make([]string, 0, len(s.Indicators)), s.Indicators...)
	}
	return &cp
}

// byUser returns copies of the user's scans, newest first.
func (r *ScanRepository) byUser(user string) []*scans.Scan {
	r.mu.RLock()
	out := make([]*scans.Scan, 0)
	for _, s := range r.items {
		if s.UserID == user {
			out = append(out, cloneScan(s))
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *ScanRepository) Paginate(_ context.Context, user string, page, pageSize int) (scans.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	all := r.byUser(user)
	start := scans.Offset(page, pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return scans.NewPaginatedResult(all[start:end], page, pageSize, int64(len(all))), nil
}

func (r *ScanRepository) Summary(_ context.Context, user string, since time.Time) (scans.Summary, error) {
	var sum scans.Summary
	for _, s := range r.byUser(user) {
		if s.CreatedAt.Before(since) {
			continue
		}
		sum.TotalScans++
		switch s.RiskLevel {
		case scans.RiskHigh:
			sum.High++
		case scans.RiskMedium:
			sum.Medium++
		default:
			sum.Low++
		}
	}
	return sum, nil
}

// ScanErrorRepository implements scanerrors.Repository.
type ScanErrorRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []*scanerrors.ScanError
}

func NewScanErrorRepository() *ScanErrorRepository { return &ScanErrorRepository{} }

func (r *ScanErrorRepository) Save(_ context.Context, e *scanerrors.ScanError) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *e
	cp.ID = r.nextID
	e.ID = cp.ID
	r.items = append(r.items, &cp)
	return nil
}

func (r *ScanErrorRepository) ListByScan(_ context.Context, user string, scanID string, limit int) ([]*scanerrors.ScanError, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*scanerrors.ScanError, 0)
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		e := r.items[i]
		if e.UserID == user && e.ScanID == scanID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ReportRepository implements reports.Repository.
type ReportRepository struct {
	mu    sync.Mutex
	items []*reports.Report
}

func NewReportRepository() *ReportRepository { return &ReportRepository{} }

func (r *ReportRepository) Save(_ context.Context, rep *reports.Report) error {
	cp := *rep
	r.mu.Lock()
	r.items = append(r.items, &cp)
	r.mu.Unlock()
	return nil
}

func (r *ReportRepository) Latest(_ context.Context, user string, limit int) ([]*reports.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.Lock()
	out := make([]*reports.Report, 0)
	for _, rep := range r.items {
		if rep.UserID == user {
			cp := *rep
			out = append(out, &cp)
		}
	}
	r.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
