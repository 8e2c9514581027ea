package ai

import (
	"context"
	"time"

	"github.com/bryanwahyu/scamshield/internal/domain/ai"
)

// Service wraps a model backend with a per-call deadline.
type Service struct {
	client  ai.Predictor
	timeout time.Duration
}

func NewService(client ai.Predictor, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{client: client, timeout: timeout}
}

// Predict runs one attempt against the backend. There is no retry.
func (s *Service) Predict(ctx context.Context, contentType, text string) (ai.Assessment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Predict(ctx, contentType, text)
}

func (s *Service) Name() string { return s.client.Name() }
