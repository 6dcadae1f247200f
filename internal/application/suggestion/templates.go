package suggestion

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/doeshing/texturepro/assets"
	"github.com/doeshing/texturepro/internal/domain"
)

// Templates renders the instructions sent to the provider.
type Templates struct {
	randomization *template.Template
	metadata      *template.Template
}

// RandomizationData is exposed to the randomization template.
type RandomizationData struct {
	Catalogs  domain.Catalogs
	Current   domain.PartialParameters
	Candidate domain.Parameters
}

// MetadataData is exposed to the metadata template.
type MetadataData struct {
	Prompt string
}

var templateFuncs = template.FuncMap{"join": strings.Join}

// NewTemplates parses the given template sources. An empty source selects
// the embedded default.
func NewTemplates(randomization, metadata string) (*Templates, error) {
	if strings.TrimSpace(randomization) == "" {
		randomization = assets.RandomizationPrompt
	}
	if strings.TrimSpace(metadata) == "" {
		metadata = assets.MetadataPrompt
	}
	r, err := template.New("randomization").Funcs(templateFuncs).Parse(randomization)
	if err != nil {
		return nil, fmt.Errorf("parse randomization template: %w", err)
	}
	m, err := template.New("metadata").Funcs(templateFuncs).Parse(metadata)
	if err != nil {
		return nil, fmt.Errorf("parse metadata template: %w", err)
	}
	return &Templates{randomization: r, metadata: m}, nil
}

// DefaultTemplates returns the embedded templates.
func DefaultTemplates() *Templates {
	t, err := NewTemplates("", "")
	if err != nil {
		panic(err)
	}
	return t
}

// Randomization renders the randomization instruction.
func (t *Templates) Randomization(data RandomizationData) (string, error) {
	return execute(t.randomization, data)
}

// Metadata renders the metadata instruction for promptText.
func (t *Templates) Metadata(promptText string) (string, error) {
	return execute(t.metadata, MetadataData{Prompt: promptText})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
