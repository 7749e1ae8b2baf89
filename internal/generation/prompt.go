package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// promptData represents the data passed to the prompt template
type promptData struct {
	Paragraph string
}

var defaultPrompt = template.Must(template.New("tasks").Parse(defaultPromptTemplate))

// loadPromptTemplate parses the template at path, or the embedded default
// when path is empty.
func loadPromptTemplate(path string) (*template.Template, error) {
	if path == "" {
		return defaultPrompt, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, path, err)
	}

	tmpl, err := template.New("tasks").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return tmpl, nil
}

func renderPrompt(tmpl *template.Template, paragraph string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Paragraph: paragraph}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// BuildPrompt renders the default instruction prompt. The paragraph is
// embedded verbatim between double quotes.
func BuildPrompt(paragraph string) (string, error) {
	return renderPrompt(defaultPrompt, paragraph)
}
