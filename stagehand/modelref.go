package stagehand

import (
	"fmt"
	"strings"
	"unicode"

	jsonmodel "github.com/openbindings/jsonmodel-go"
)

// ModelRef is a model identifier split into provider and model, such as
// openai/gpt-4o or openrouter/meta-llama/llama-3.1-70b.
type ModelRef struct {
	// Provider is lowercase.
	Provider string
	// Model may itself contain slashes when a provider routes to another
	// vendor's models.
	Model string
}

func (r ModelRef) String() string { return r.Provider + "/" + r.Model }

// ParseModelRef splits s at its first slash. The provider is matched case
// insensitively and stored lowercase; the model name is kept as written.
func ParseModelRef(s string) (ModelRef, error) {
	provider, model, ok := strings.Cut(s, "/")
	if !ok {
		return ModelRef{}, fmt.Errorf("model ref %q: missing provider", s)
	}
	provider = strings.ToLower(provider)
	if provider == "" || strings.IndexFunc(provider, invalidProviderRune) >= 0 {
		return ModelRef{}, fmt.Errorf("model ref %q: invalid provider", s)
	}
	if model == "" || strings.HasPrefix(model, "/") || strings.HasSuffix(model, "/") ||
		strings.Contains(model, "//") || strings.IndexFunc(model, unicode.IsSpace) >= 0 {
		return ModelRef{}, fmt.Errorf("model ref %q: invalid model name", s)
	}
	return ModelRef{Provider: provider, Model: model}, nil
}

func invalidProviderRune(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_')
}

// ModelRefOf splits the wire value of m, known to this client or not.
func ModelRefOf(m jsonmodel.Enum[ModelName]) (ModelRef, error) {
	s, ok := m.Raw().(string)
	if !ok {
		return ModelRef{}, fmt.Errorf("model ref: %v is not a string", m.Raw())
	}
	return ParseModelRef(s)
}

// Enum returns r as a ModelName wire value. Models this client does not know
// are carried as unrecognized values, so they can still be sent in
// ActOptions.
func (r ModelRef) Enum() jsonmodel.Enum[ModelName] {
	// Parse only fails for non-string input.
	e, _ := modelNameValues.Parse(r.String())
	return e
}

// Known returns the ModelName for r, if the vocabulary defines it.
func (r ModelRef) Known() (ModelName, bool) { return r.Enum().Known() }
