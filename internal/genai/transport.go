package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	maxPromptSize = 2 * 1024 * 1024 // 2MB total prompt payload
)

// Transport is the capability the executor needs from an upstream client:
// apply a credential, then send a prompt and get the model text back.
// Any implementation can be substituted (the tests use an in-memory fake).
type Transport interface {
	Configure(apiKey string)
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPTransport talks to the Gemini generateContent endpoint.
type HTTPTransport struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	apiKey     string
}

// NewHTTPTransport creates a Gemini transport with the given configuration.
func NewHTTPTransport(cfg Config, logger *zap.Logger) (*HTTPTransport, error) {
	// Apply defaults + normalize BaseURL
	cfg = cfg.WithDefaults()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Use provided logger or no-op
	if logger == nil {
		logger = zap.NewNop()
	}

	// Use custom HTTP client if provided, otherwise create default
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: defaultTransport(cfg),
		}
	}

	return &HTTPTransport{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger.Named("genai"),
	}, nil
}

// Configure sets the API key used by subsequent Generate calls.
func (t *HTTPTransport) Configure(apiKey string) {
	t.apiKey = apiKey
}

// Generate sends one prompt upstream and returns the candidate text.
func (t *HTTPTransport) Generate(parentCtx context.Context, prompt string) (string, error) {
	start := time.Now()

	if prompt == "" {
		return "", fmt.Errorf("genai: prompt is empty")
	}
	if t.apiKey == "" {
		return "", fmt.Errorf("genai: no API key configured")
	}
	if len(prompt) > maxPromptSize {
		return "", fmt.Errorf("genai: prompt too large (%d bytes, max %d)", len(prompt), maxPromptSize)
	}

	// Per-request timeout (0 = only use parentCtx)
	var ctx context.Context
	var cancel context.CancelFunc
	if t.cfg.RequestTimeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, t.cfg.RequestTimeout)
	} else {
		ctx, cancel = context.WithCancel(parentCtx)
	}
	defer cancel()

	pReq := providerGenerateRequest{
		Contents: []providerContent{
			{Role: "user", Parts: []providerPart{{Text: prompt}}},
		},
	}

	bodyBytes, err := json.Marshal(pReq)
	if err != nil {
		return "", fmt.Errorf("genai: marshal request: %w", err)
	}

	url := t.cfg.BaseURL + "/v1beta/models/" + t.cfg.Model + ":generateContent"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("genai: build HTTP request: %w", err)
	}
	httpReq.Header.Set("x-goog-api-key", t.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		t.logger.Debug("genai request failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return "", err
	}
	defer resp.Body.Close()

	// Handle non-2xx responses
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		// Try to parse structured error
		var perr providerErrorResponse
		if err := json.Unmarshal(body, &perr); err == nil && perr.Error.Message != "" {
			t.logger.Debug("genai provider error",
				zap.Int("status", resp.StatusCode),
				zap.String("error_status", perr.Error.Status),
				zap.String("error_message", perr.Error.Message),
			)
			return "", fmt.Errorf("genai: upstream %d: %s (%s)",
				resp.StatusCode, perr.Error.Message, perr.Error.Status)
		}

		// Fallback to raw body
		t.logger.Debug("genai upstream error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 200)),
		)
		return "", fmt.Errorf("genai: upstream %d: %s",
			resp.StatusCode, truncate(string(body), 200))
	}

	// Decode success response
	var pResp providerGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&pResp); err != nil {
		return "", fmt.Errorf("genai: decode upstream response: %w", err)
	}

	if len(pResp.Candidates) == 0 {
		t.logger.Debug("genai provider returned no candidates",
			zap.String("model", t.cfg.Model),
		)
		return "", fmt.Errorf("genai: provider returned no candidates")
	}

	// Join all text parts of the first candidate.
	var sb strings.Builder
	for _, part := range pResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("genai: candidate contained no text")
	}

	fields := []zap.Field{
		zap.String("model", t.cfg.Model),
		zap.Int("response_chars", len(text)),
		zap.Duration("duration", time.Since(start)),
	}
	if pResp.UsageMetadata != nil {
		fields = append(fields,
			zap.Int("prompt_tokens", pResp.UsageMetadata.PromptTokenCount),
			zap.Int("candidate_tokens", pResp.UsageMetadata.CandidatesTokenCount),
		)
	}
	t.logger.Info("genai request completed", fields...)

	return text, nil
}

// Close releases resources held by the transport.
func (t *HTTPTransport) Close() error {
	t.httpClient.CloseIdleConnections()
	return nil
}

// truncate limits string length for logging
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
