package users

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// User is the identity carried by a demo session. It is never stored.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is an issued token and its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the same loose shape the sign-in form does.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NameFromEmail returns the local part of an address.
func NameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// Strength tiers
type Strength string

const (
	StrengthWeak   Strength = "Weak"
	StrengthMedium Strength = "Medium"
	StrengthStrong Strength = "Strong"
)

const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// PasswordScore gives one point each for length >= 8, a digit, a symbol and an upper-case letter.
func PasswordScore(password string) int {
	score := 0
	if utf8.RuneCountInString(password) >= 8 {
		score++
	}
	if strings.ContainsAny(password, "0123456789") {
		score++
	}
	if strings.ContainsAny(password, passwordSymbols) {
		score++
	}
	if strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		score++
	}
	return score
}

// PasswordStrength maps PasswordScore to a tier.
func PasswordStrength(password string) Strength {
	switch s := PasswordScore(password); {
	case s <= 1:
		return StrengthWeak
	case s <= 3:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
