package application

import (
	"time"

	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

// Clock interface supaya gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T. Handy in tests.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// Page normalises page/pageSize pairs: page defaults to 1 and stops at scans.MaxPage,
// size defaults to 20 and caps at 100.
func Page(page, pageSize int) (int, int) {
	pageSize = Limit(pageSize)
	if page <= 0 {
		page = 1
	}
	if last := scans.MaxPage(pageSize); page > last {
		page = last
	}
	return page, pageSize
}

// Limit clamps a list limit to [1,100], defaulting to 20.
func Limit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
