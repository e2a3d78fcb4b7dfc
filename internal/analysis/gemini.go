package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/freshcart-pos/internal/domain/model"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the Gemini model used for cart analysis.
	DefaultModel = "gemini-2.5-flash"
	// DefaultTimeout bounds a single analysis call.
	DefaultTimeout = 20 * time.Second
)

// GeminiConfig configures the Gemini-backed client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// GeminiClient calls the Gemini API with a JSON response schema.
type GeminiClient struct {
	models  *genai.Models
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a client. An empty API key yields a client whose
// every call fails with KindUnconfigured, so the session falls back.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	c := &GeminiClient{
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if cfg.APIKey == "" {
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.models = client.Models
	return c, nil
}

// Configured reports whether the client has credentials.
func (c *GeminiClient) Configured() bool {
	return c.models != nil
}

// Analyze sends one generateContent request for the cart items.
func (c *GeminiClient) Analyze(ctx context.Context, items []model.AnalysisItem) (model.AnalysisResult, error) {
	if c.models == nil {
		return model.AnalysisResult{}, NewServiceError(KindUnconfigured, ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(buildPrompt(items)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return model.AnalysisResult{}, classify(err)
	}

	return parseResult(responseText(resp))
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// classify maps SDK and transport errors onto ServiceError kinds.
func classify(err error) *ServiceError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return NewServiceError(KindService, fmt.Errorf("gemini status %d: %s", apiErr.Code, apiErr.Message))
	}
	return NewServiceError(KindNetwork, err)
}
