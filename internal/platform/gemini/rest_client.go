package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/redact"
)

// maxErrorBody bounds how much of a failed response is read for logging.
const maxErrorBody = 64 << 10

// HTTPDoer is the part of *http.Client the REST transport needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTClient calls generateContent with a hand-built JSON request.
type RESTClient struct {
	endpoint *url.URL
	http     HTTPDoer
	logger   *slog.Logger
}

var _ generation.Client = (*RESTClient)(nil)

// NewRESTClient creates a RESTClient posting to endpoint. A nil doer means
// http.DefaultClient.
func NewRESTClient(endpoint string, doer HTTPDoer, logger *slog.Logger) (*RESTClient, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid gemini endpoint %q", generation.ErrInvalidConfig, endpoint)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &RESTClient{
		endpoint: u,
		http:     doer,
		logger:   logger.With("component", "gemini_rest"),
	}, nil
}

// GenerateText implements generation.Client.
func (c *RESTClient) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{Temperature: req.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode gemini request: %w", err)
	}

	u := *c.endpoint
	q := u.Query()
	q.Set("key", req.APIKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.DebugContext(ctx, "calling gemini", "prompt_length", len(req.Prompt))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		// The URL in a *url.Error carries the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redact.String(urlErr.URL)
		}
		return "", generation.NewError(generation.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.requestFailed(ctx, log, resp)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", generation.NewError(generation.KindMalformedResponse,
			fmt.Errorf("failed to decode gemini response: %w", err))
	}

	text := decoded.firstText()
	if text == "" {
		return "", generation.NewError(generation.KindEmptyGeneration, nil)
	}
	return text, nil
}

// requestFailed reads the error body best-effort and logs it.
func (c *RESTClient) requestFailed(ctx context.Context, log *slog.Logger, resp *http.Response) error {
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope errorResponse
	var cause error
	if readErr == nil && json.Unmarshal(raw, &envelope) == nil && envelope.Error.Message != "" {
		cause = errors.New(envelope.Error.Message)
		log.WarnContext(ctx, "gemini API error",
			"status_code", resp.StatusCode,
			"api_status", envelope.Error.Status,
			"api_message", redact.String(envelope.Error.Message))
	} else {
		log.WarnContext(ctx, "gemini API error",
			"status_code", resp.StatusCode,
			"body", redact.String(string(raw)))
	}

	return generation.NewRequestFailedError(resp.StatusCode, cause)
}
