package reports

import (
	"time"

	"github.com/bryanwahyu/scamshield/internal/domain/scans"
)

type ReportID string

// Report is a user-submitted account of a scam attempt.
type Report struct {
	ID          ReportID          `json:"id"`
	UserID      string            `json:"user"`
	ScamType    string            `json:"scam_type"`
	Channel     scans.ContentType `json:"channel"`
	Description string            `json:"description"`
	Contact     string            `json:"contact,omitempty"`
	EvidenceURL string            `json:"evidence_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Known scam categories, in the order the report form lists them.
var ScamTypes = []string{
	"Phishing (Bank / UPI / KYC)",
	"Investment / trading scam",
	"Fake customer support",
	"Lottery / prize",
	"Job / task scam",
	"Other",
}

// ValidScamType reports whether s is one of ScamTypes.
func ValidScamType(s string) bool {
	for _, t := range ScamTypes {
		if t == s {
			return true
		}
	}
	return false
}
