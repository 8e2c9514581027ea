package scans

import (
	"strings"
	"time"
)

// ID tipe untuk Scan
type ScanID string

// ContentType is the channel the caller says the text came from.
// It is carried through to results and never used for scoring.
type ContentType string

const (
	TypeSMS       ContentType = "SMS"
	TypeEmail     ContentType = "Email"
	TypeURL       ContentType = "URL"
	TypeWhatsApp  ContentType = "WhatsApp"
	TypePhoneCall ContentType = "Phone call"
	TypeTelegram  ContentType = "Telegram"
	TypeOther     ContentType = "Other"
)

var contentTypes = []ContentType{
	TypeSMS, TypeEmail, TypeURL, TypeWhatsApp, TypePhoneCall, TypeTelegram, TypeOther,
}

// ContentTypes returns every accepted tag in display order.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// ParseContentType matches a tag case-insensitively and returns its canonical form.
// "phone-call" and "phone_call" are accepted as spellings of "Phone call".
func ParseContentType(s string) (ContentType, error) {
	key := normalizeTag(s)
	if key == "" {
		return "", ErrTypeRequired
	}
	for _, t := range contentTypes {
		if normalizeTag(string(t)) == key {
			return t, nil
		}
	}
	return "", ErrInvalidType
}

func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", " ", "_", " ").Replace(s)
}

// RiskLevel enum
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Source tells which engine produced a result.
type Source string

const (
	SourceHeuristic Source = "heuristic"
	SourceModel     Source = "model"
)

// Result is the response of a single evaluation.
type Result struct {
	RiskLevel   RiskLevel   `json:"risk_level"`
	RiskScore   int         `json:"risk_score"`
	Explanation string      `json:"explanation"`
	Indicators  []string    `json:"indicators"`
	Type        ContentType `json:"type"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Aggregate Root: Scan, one row of a user's history
type Scan struct {
	ID          ScanID      `json:"id"`
	UserID      string      `json:"user"`
	Type        ContentType `json:"type"`
	Snippet     string      `json:"snippet"`
	RiskLevel   RiskLevel   `json:"risk_level"`
	RiskScore   int         `json:"risk_score"`
	Explanation string      `json:"explanation"`
	Indicators  []string    `json:"indicators"`
	Source      Source      `json:"source"`
	Offline     bool        `json:"offline"`
	CreatedAt   time.Time   `json:"created_at"`
}

const snippetRunes = 80

// Snippet shortens text for history listings.
func Snippet(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) <= snippetRunes {
		return string(r)
	}
	return strings.TrimSpace(string(r[:snippetRunes])) + "..."
}

// Summary value object, totals per risk level
type Summary struct {
	TotalScans int `json:"total_scans"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
}
