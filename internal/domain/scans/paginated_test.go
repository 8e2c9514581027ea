package scans_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, scans.Offset(0, 20))
	assert.Equal(t, 0, scans.Offset(1, 20))
	assert.Equal(t, 40, scans.Offset(3, 20))
	assert.Equal(t, scans.MaxOffset, scans.Offset(math.MaxInt64, 20))
	assert.Equal(t, scans.MaxOffset, scans.Offset(math.MaxInt64/20+2, 20))
	assert.GreaterOrEqual(t, scans.Offset(scans.MaxPage(100), 100), 0)
}
