package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/phrazzld/dailyplan-api/internal/platform/logger"
	"github.com/phrazzld/dailyplan-api/internal/redact"
)

// DefaultTemperature is the sampling temperature sent with every request.
const DefaultTemperature float32 = 0.7

// Credential is the Gemini API key. Only its presence matters here.
type Credential string

// Available reports whether a non-blank key is configured.
func (c Credential) Available() bool {
	return strings.TrimSpace(string(c)) != ""
}

// String keeps the key out of logs and fmt output.
func (c Credential) String() string {
	if c.Available() {
		return "[REDACTED]"
	}
	return ""
}

// Request is one text generation call.
type Request struct {
	APIKey      string
	Prompt      string
	Temperature float32
}

// Client performs a single generation call and returns the text of the first
// candidate's first part. Failures must be *Error values with KindNetwork,
// KindRequestFailed or KindEmptyGeneration.
type Client interface {
	GenerateText(ctx context.Context, req Request) (string, error)
}

// Generator is the capability the rest of the application depends on.
type Generator interface {
	HasCredential() bool
	ConvertParagraph(ctx context.Context, paragraph string) ([]string, error)
}

// Options configures a Converter.
type Options struct {
	Credential Credential
	// PromptTemplatePath replaces the embedded prompt when set.
	PromptTemplatePath string
}

// Converter turns paragraphs into task titles. It holds no mutable state, so
// concurrent calls are independent.
type Converter struct {
	client     Client
	logger     *slog.Logger
	credential Credential
	prompt     *template.Template
}

var _ Generator = (*Converter)(nil)

// NewConverter creates a Converter. A missing credential is not an error:
// HasCredential reports it and ConvertParagraph fails with KindCredentialMissing.
func NewConverter(client Client, logger *slog.Logger, opts Options) (*Converter, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	tmpl, err := loadPromptTemplate(opts.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &Converter{
		client:     client,
		logger:     logger.With("component", "task_converter"),
		credential: opts.Credential,
		prompt:     tmpl,
	}, nil
}

// HasCredential reports whether an API key is configured.
func (c *Converter) HasCredential() bool {
	return c.credential.Available()
}

// ConvertParagraph asks the model for task titles describing paragraph.
// The result holds at most MaxTasks titles of at most MaxTitleLength runes.
func (c *Converter) ConvertParagraph(ctx context.Context, paragraph string) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	titles, err := c.convert(ctx, paragraph)
	if err != nil {
		genErr := asGenerationError(err)
		log.ErrorContext(ctx, "paragraph conversion failed",
			"kind", genErr.Kind.String(),
			"category", genErr.Kind.Category().String(),
			"status_code", genErr.StatusCode,
			"error", redact.Error(genErr))
		return nil, genErr
	}

	log.InfoContext(ctx, "paragraph converted to tasks",
		"paragraph_length", len(paragraph),
		"task_count", len(titles))
	return titles, nil
}

func (c *Converter) convert(ctx context.Context, paragraph string) ([]string, error) {
	if !c.HasCredential() {
		return nil, NewError(KindCredentialMissing, nil)
	}

	prompt, err := renderPrompt(c.prompt, paragraph)
	if err != nil {
		return nil, err
	}

	text, err := c.client.GenerateText(ctx, Request{
		APIKey:      string(c.credential),
		Prompt:      prompt,
		Temperature: DefaultTemperature,
	})
	if err != nil {
		return nil, err
	}

	return ParseTaskTitles(CleanResponse(text))
}

// asGenerationError guarantees a *Error; unclassified failures land in
// KindRequestFailed, whose category is the generic communication bucket.
func asGenerationError(err error) *Error {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr
	}
	return NewError(KindRequestFailed, err)
}
