package gemini

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/dailyplan-api/internal/config"
	"github.com/phrazzld/dailyplan-api/internal/generation"
)

// Transport names accepted in llm.transport.
const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

// NewClient creates the transport selected by cfg.Transport. A nil
// httpClient means http.DefaultClient, whose only timeout is the platform's.
func NewClient(cfg config.LLMConfig, httpClient *http.Client, logger *slog.Logger) (generation.Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	switch cfg.Transport {
	case TransportREST, "":
		return NewRESTClient(cfg.Endpoint, httpClient, logger)
	case TransportSDK:
		return NewSDKClient(cfg.Endpoint, cfg.ModelName, httpClient, logger)
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", generation.ErrInvalidConfig, cfg.Transport)
	}
}

// NewGenerator creates a generation.Converter backed by the configured
// Gemini transport. A missing API key is reported by HasCredential, not here.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*generation.Converter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	client, err := NewClient(cfg, httpClient, logger)
	if err != nil {
		return nil, err
	}

	converter, err := generation.NewConverter(client, logger, generation.Options{
		Credential:         generation.Credential(cfg.GeminiAPIKey),
		PromptTemplatePath: cfg.PromptTemplatePath,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("task generator initialized",
		"transport", cfg.Transport,
		"model", cfg.ModelName,
		"credential_available", converter.HasCredential())
	return converter, nil
}
