package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/jiwoo-han/testcase-gen/internal/common"
)

// Client implements llm.TextGenerator against the Gemini API.
type Client struct {
	cfg    Config
	client *genai.Client
	logger *slog.Logger
}

// NewClient builds the Gemini client. A missing API key is a configuration
// error raised here, not a deferred nil-check at call time.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, common.NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is not set",
			common.ErrServiceUnavailable)
	}
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, common.NewAppError("CONFIG_ERROR", "failed to create Gemini client",
			fmt.Errorf("%w: %v", common.ErrServiceUnavailable, err))
	}

	return &Client{cfg: cfg, client: gc, logger: logger}, nil
}

// GenerateText runs one text-completion call and returns the raw response text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.gemini.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_chars", len(prompt),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.cfg.Temperature),
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	)
	if err != nil {
		c.logger.Error("llm.gemini.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		c.logger.Error("llm.gemini.empty_response",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("empty response from model %s", c.cfg.Model)
	}

	c.logger.Info("llm.gemini.response",
		"req_id", rid,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
