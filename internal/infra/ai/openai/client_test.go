package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/scamshield/internal/domain/ai"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := goopenai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewClientWithConfig(cfg, "gpt-4o-mini", []string{"OTP harvesting attempt"})
}

func TestClient_Predict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req goopenai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "share your OTP")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
			Choices: []goopenai.ChatCompletionChoice{{
				Message: goopenai.ChatCompletionMessage{
					Role:    goopenai.ChatMessageRoleAssistant,
					Content: `{"risk_level":"High","risk_score":88,"explanation":"Asks for an OTP.","indicators":["OTP harvesting attempt"]}`,
				},
			}},
		})
	})

	a, err := c.Predict(context.Background(), "SMS", "please share your OTP now")
	require.NoError(t, err)
	assert.Equal(t, 88, a.RiskScore)
	assert.Equal(t, "High", a.RiskLevel)
	assert.Equal(t, "openai:gpt-4o-mini", c.Name())
}

func TestClient_PredictQuota(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota","type":"insufficient_quota"}}`))
	})

	_, err := c.Predict(context.Background(), "SMS", "please share your OTP now")
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestClient_PredictNoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Predict(context.Background(), "SMS", "please share your OTP now")
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestClient_PredictLevelOnlyReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
			Choices: []goopenai.ChatCompletionChoice{{
				Message: goopenai.ChatCompletionMessage{
					Role:    goopenai.ChatMessageRoleAssistant,
					Content: `{"risk_level":"High","explanation":"Clear OTP phishing."}`,
				},
			}},
		})
	})

	_, err := c.Predict(context.Background(), "SMS", "please share your OTP now")
	assert.ErrorIs(t, err, ai.ErrMalformedOutput)
}
