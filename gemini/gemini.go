// Package gemini generates chat replies with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/legalbridge/legalbridge-api/chat"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// ContentGenerator is the part of the genai client used here
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements chat.Generator
type Client struct {
	Models ContentGenerator
	Model  string
}

// New builds a client for apiKey. Without a key the client never calls out and
// every Generate fails with chat.ErrCredentialMissing.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	if apiKey == "" {
		return &Client{Model: model}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{Models: client.Models, Model: model}, nil
}

// Generate sends prompt as a single user turn and returns the first candidate's
// first text part
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.Models == nil {
		return "", chat.ErrCredentialMissing
	}
	resp, err := c.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", chat.ErrMalformedResponse)
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", fmt.Errorf("%w: first candidate has no parts", chat.ErrMalformedResponse)
	}
	if content.Parts[0].Text == "" {
		return "", fmt.Errorf("%w: first part has no text", chat.ErrMalformedResponse)
	}
	return content.Parts[0].Text, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return fmt.Errorf("%w: %v", chat.ErrTransport, err)
		}
		apiErr = *ptr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %s", chat.ErrQuotaExceeded, apiErr.Message)
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden ||
		strings.Contains(apiErr.Message, "API key"):
		return fmt.Errorf("%w: %s", chat.ErrCredentialMissing, apiErr.Message)
	default:
		return fmt.Errorf("%w: status %d: %s", chat.ErrTransport, apiErr.Code, apiErr.Message)
	}
}
