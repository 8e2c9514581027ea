package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/scamshield/internal/domain/users"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, users.ValidEmail("analyst@example.com"))
	assert.False(t, users.ValidEmail("analyst@example"))
	assert.False(t, users.ValidEmail("analyst example.com"))
	assert.False(t, users.ValidEmail(""))
}

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "priya", users.NameFromEmail("priya@example.com"))
	assert.Equal(t, "nobody", users.NameFromEmail("nobody"))
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		expected users.Strength
	}{
		{"", 0, users.StrengthWeak},
		{"abcdefgh", 1, users.StrengthWeak},
		{"abcdefg1", 2, users.StrengthMedium},
		{"abcdef1!", 3, users.StrengthMedium},
		{"Abcdef1!", 4, users.StrengthStrong},
		{"A1!", 3, users.StrengthMedium},
		{"äöüäöü", 0, users.StrengthWeak},
		{"äöüäöüäö", 1, users.StrengthWeak},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.score, users.PasswordScore(tt.password))
			assert.Equal(t, tt.expected, users.PasswordStrength(tt.password))
		})
	}
}
