package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"ideaforge/internal/errors"
	"ideaforge/internal/logging"
)

// Generation defaults. Overridable via client options.
const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 4096

	// DefaultAPIKeyEnv is the environment variable consulted when no API
	// key is supplied explicitly.
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
)

// GeminiClient implements Client over the Gemini API.
type GeminiClient struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
	timeout         time.Duration
	logger          *logging.Logger
}

// GeminiOption configures a GeminiClient.
type GeminiOption func(*GeminiClient)

// WithModel sets the model name (default gemini-2.0-flash).
func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature (default 0.7).
func WithTemperature(temperature float32) GeminiOption {
	return func(c *GeminiClient) {
		c.temperature = temperature
	}
}

// WithMaxOutputTokens sets the output token limit (default 4096).
func WithMaxOutputTokens(maxTokens int32) GeminiOption {
	return func(c *GeminiClient) {
		if maxTokens > 0 {
			c.maxOutputTokens = maxTokens
		}
	}
}

// WithTimeout bounds each Generate call. Zero means no client-side limit.
func WithTimeout(timeout time.Duration) GeminiOption {
	return func(c *GeminiClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *logging.Logger) GeminiOption {
	return func(c *GeminiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewGeminiClient creates a Gemini-backed Client. If apiKey is empty, the
// GEMINI_API_KEY environment variable is consulted; construction fails when
// neither is set.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv(DefaultAPIKeyEnv)
	}
	if apiKey == "" {
		return nil, errors.NewValidationError("API key is required").
			WithField("api_key").
			WithCause(errors.ErrInvalidInput)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}

	c := &GeminiClient{
		client:          client,
		model:           DefaultModel,
		temperature:     DefaultTemperature,
		maxOutputTokens: DefaultMaxOutputTokens,
		logger:          logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.model
}

// Generate sends the request to the Gemini API and returns the raw text
// response. Errors are returned wrapped, never folded into response text.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		return Response{}, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxOutputTokens,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	userText := req.Prompt + contextSections(req.Context)

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(userText), config)
	if err != nil {
		c.logger.Error("generation failed", "model", c.model, "error", err.Error())
		return Response{}, errors.NewAgentError(fmt.Sprintf("model %s request failed: %v", c.model, err),
			errors.ErrGenerationFailed)
	}

	text := result.Text()
	c.logger.Debug("generation completed", "model", c.model, "response_chars", len(text))
	return Response{Text: text, Model: c.model}, nil
}
