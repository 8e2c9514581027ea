package ai

import "context"

// Assessment is the raw verdict of a model backend, before normalisation.
type Assessment struct {
	RiskLevel   string   `json:"risk_level"`
	RiskScore   int      `json:"risk_score"`
	Explanation string   `json:"explanation"`
	Indicators  []string `json:"indicators"`
}

// Predictor scores a text sample with a model backend.
type Predictor interface {
	Predict(ctx context.Context, contentType, text string) (Assessment, error)
	Name() string
}
