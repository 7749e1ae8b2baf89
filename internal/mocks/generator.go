package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/dailyplan-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// ConvertParagraphFn overrides the default response when set.
	ConvertParagraphFn func(ctx context.Context, paragraph string) ([]string, error)

	// Default response values
	Credential bool
	Titles     []string
	Err        error

	mu         sync.Mutex
	paragraphs []string
}

var _ generation.Generator = (*MockGenerator)(nil)

// HasCredential implements generation.Generator.
func (m *MockGenerator) HasCredential() bool {
	return m.Credential
}

// ConvertParagraph implements generation.Generator and records paragraph.
func (m *MockGenerator) ConvertParagraph(ctx context.Context, paragraph string) ([]string, error) {
	m.mu.Lock()
	m.paragraphs = append(m.paragraphs, paragraph)
	m.mu.Unlock()

	if m.ConvertParagraphFn != nil {
		return m.ConvertParagraphFn(ctx, paragraph)
	}
	return m.Titles, m.Err
}

// Paragraphs returns every paragraph passed to ConvertParagraph, in order.
func (m *MockGenerator) Paragraphs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paragraphs...)
}
