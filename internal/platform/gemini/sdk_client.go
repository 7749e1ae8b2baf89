package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/dailyplan-api/internal/generation"
	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"google.golang.org/genai"
)

// SDKClient calls generateContent through the official genai client.
type SDKClient struct {
	model      string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ generation.Client = (*SDKClient)(nil)

// NewSDKClient creates an SDKClient. The base URL and API version are taken
// from endpoint so both transports honour the same setting.
func NewSDKClient(endpoint, model string, httpClient *http.Client, logger *slog.Logger) (*SDKClient, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if model == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	baseURL, apiVersion, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	return &SDKClient{
		model:      model,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     logger.With("component", "gemini_sdk"),
	}, nil
}

// GenerateText implements generation.Client.
func (c *SDKClient) GenerateText(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	// The key arrives with each request, so the client is built per call;
	// construction does no I/O.
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.baseURL,
			APIVersion: c.apiVersion,
		},
	})
	if err != nil {
		return "", generation.NewError(generation.KindRequestFailed,
			fmt.Errorf("failed to create genai client: %w", err))
	}

	log.DebugContext(ctx, "calling gemini", "model", c.model, "prompt_length", len(req.Prompt))

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(req.Temperature)})
	if err != nil {
		classified := classifySDKError(err)
		log.WarnContext(ctx, "gemini API error",
			"kind", classified.Kind.String(),
			"status_code", classified.StatusCode)
		return "", classified
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0] == nil ||
		resp.Candidates[0].Content.Parts[0].Text == "" {
		return "", generation.NewError(generation.KindEmptyGeneration, nil)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func classifySDKError(err error) *generation.Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.NewRequestFailedError(apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.NewRequestFailedError(apiErrPtr.Code, err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return generation.NewError(generation.KindNetwork, err)
	}
	return generation.NewError(generation.KindRequestFailed, err)
}

// splitEndpoint turns
// https://host/v1beta/models/m:generateContent into ("https://host/", "v1beta").
func splitEndpoint(endpoint string) (string, string, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: invalid gemini endpoint %q", generation.ErrInvalidConfig, endpoint)
	}
	baseURL := u.Scheme + "://" + u.Host + "/"

	version := ""
	if first, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/"); strings.HasPrefix(first, "v") {
		version = first
	}
	return baseURL, version, nil
}
