package memory_test

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/scamshield/internal/domain/reports"
	"github.com/bryanwahyu/scamshield/internal/domain/scanerrors"
	"github.com/bryanwahyu/scamshield/internal/domain/scans"
	"github.com/bryanwahyu/scamshield/internal/infra/db/memory"
)

var base = time.Date(2026, 2, 25, 18, 3, 0, 0, time.UTC)

func seed(t *testing.T, repo *memory.ScanRepository, user string, n int) {
	t.Helper()
	levels := []scans.RiskLevel{scans.RiskHigh, scans.RiskMedium, scans.RiskLow}
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Save(context.Background(), &scans.Scan{
			ID:        scans.ScanID(fmt.Sprintf("%s-%02d", user, i)),
			UserID:    user,
			Type:      scans.TypeSMS,
			RiskLevel: levels[i%3],
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
}

func TestScanRepository_PaginateNewestFirst(t *testing.T) {
	repo := memory.NewScanRepository()
	seed(t, repo, "a@x.io", 5)
	seed(t, repo, "b@x.io", 2)

	page, err := repo.Paginate(context.Background(), "a@x.io", 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, scans.ScanID("a@x.io-04"), page.Data[0].ID)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)

	last, err := repo.Paginate(context.Background(), "a@x.io", 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Data, 1)
	assert.Equal(t, scans.ScanID("a@x.io-00"), last.Data[0].ID)

	beyond, err := repo.Paginate(context.Background(), "a@x.io", 9, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.NotNil(t, beyond.Data)
}

func TestScanRepository_PaginateHugePage(t *testing.T) {
	repo := memory.NewScanRepository()
	seed(t, repo, "a@x.io", 3)

	var page scans.PaginatedResult
	var err error
	require.NotPanics(t, func() {
		page, err = repo.Paginate(context.Background(), "a@x.io", math.MaxInt64, 20)
	})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(3), page.Total)
}

func TestScanRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewScanRepository()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &scans.Scan{
		ID: "s1", UserID: "a@x.io", Type: scans.TypeSMS, CreatedAt: base,
		Indicators: []string{"OTP harvesting attempt"},
	}))

	got, err := repo.Get(ctx, "a@x.io", "s1")
	require.NoError(t, err)
	got.Indicators[0] = "changed"

	page, err := repo.Paginate(ctx, "a@x.io", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	page.Data[0].Indicators[0] = "changed again"

	again, err := repo.Get(ctx, "a@x.io", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"OTP harvesting attempt"}, again.Indicators)
}

func TestScanRepository_GetScopedToUser(t *testing.T) {
	repo := memory.NewScanRepository()
	seed(t, repo, "a@x.io", 1)

	_, err := repo.Get(context.Background(), "b@x.io", "a@x.io-00")
	assert.ErrorIs(t, err, scans.ErrNotFound)

	s, err := repo.Get(context.Background(), "a@x.io", "a@x.io-00")
	require.NoError(t, err)
	assert.Equal(t, scans.TypeSMS, s.Type)
}

func TestScanRepository_Summary(t *testing.T) {
	repo := memory.NewScanRepository()
	seed(t, repo, "a@x.io", 6)

	sum, err := repo.Summary(context.Background(), "a@x.io", base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, scans.Summary{TotalScans: 3, High: 1, Medium: 1, Low: 1}, sum)
}

func TestScanErrorRepository_ListByScan(t *testing.T) {
	repo := memory.NewScanErrorRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &scanerrors.ScanError{UserID: "a@x.io", ScanID: "s1", Message: fmt.Sprint(i)}))
	}
	require.NoError(t, repo.Save(ctx, &scanerrors.ScanError{UserID: "a@x.io", ScanID: "s2", Message: "other"}))

	list, err := repo.ListByScan(ctx, "a@x.io", "s1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].Message)
	assert.Equal(t, int64(3), list[0].ID)
}

func TestReportRepository_Latest(t *testing.T) {
	repo := memory.NewReportRepository()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &reports.Report{
			ID:        reports.ReportID(fmt.Sprint(i)),
			UserID:    "a@x.io",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := repo.Latest(ctx, "a@x.io", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, reports.ReportID("2"), list[0].ID)

	none, err := repo.Latest(ctx, "b@x.io", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
