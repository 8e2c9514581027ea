package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/scamshield/internal/domain/ai"
	"github.com/bryanwahyu/scamshield/internal/infra/ai/prompt"
)

const maxTokens = 512

const defaultModel = "gpt-4o-mini"

type Client struct {
	*openai.Client
	Model string
	// Labels is the indicator catalogue passed to the system prompt.
	Labels []string
}

func NewClient(apiKey, model string, labels []string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model, Labels: labels}
}

// NewClientWithConfig is used when the base URL differs from api.openai.com.
func NewClientWithConfig(cfg openai.ClientConfig, model string, labels []string) *Client {
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model, Labels: labels}
}

func (c *Client) Name() string { return "openai:" + c.model() }

func (c *Client) model() string {
	if c.Model == "" {
		return defaultModel
	}
	return c.Model
}

// Predict implements ai.Predictor.
func (c *Client) Predict(ctx context.Context, contentType, text string) (ai.Assessment, error) {
	model := c.model()
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt(c.Labels)},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(contentType, text)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		if isQuota(err) {
			return ai.Assessment{}, fmt.Errorf("%w: %v", ai.ErrQuotaExceeded, err)
		}
		return ai.Assessment{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ai.Assessment{}, ai.ErrEmptyResponse
	}

	return prompt.ParseAssessment(resp.Choices[0].Message.Content)
}

func isQuota(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	return errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests
}
