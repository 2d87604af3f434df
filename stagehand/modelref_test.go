package stagehand

import (
	"testing"

	jsonmodel "github.com/openbindings/jsonmodel-go"
)

func TestParseModelRef_LowercasesProviderOnly(t *testing.T) {
	ref, err := ParseModelRef("OpenAI/gpt-4o")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ref.Provider != "openai" || ref.Model != "gpt-4o" {
		t.Fatalf("unexpected ref: %#v", ref)
	}
	if m, ok := ref.Known(); !ok || m != ModelNameGPT4o {
		t.Fatalf("expected known model, got %v %v", m, ok)
	}

	ref, _ = ParseModelRef("anthropic/Claude-X")
	if ref.Model != "Claude-X" {
		t.Fatalf("model name must keep its case, got %q", ref.Model)
	}
}

func TestParseModelRef_RoutedModel(t *testing.T) {
	ref, err := ParseModelRef("openrouter/meta-llama/llama-3.1-70b")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ref.Provider != "openrouter" || ref.Model != "meta-llama/llama-3.1-70b" {
		t.Fatalf("unexpected ref: %#v", ref)
	}
	if ref.String() != "openrouter/meta-llama/llama-3.1-70b" {
		t.Fatalf("unexpected string %q", ref.String())
	}
}

func TestParseModelRef_RejectsInvalid(t *testing.T) {
	for _, c := range []string{
		"",
		"noslash",
		"/gpt-4o",
		"openai/",
		"openai//gpt-4o",
		"openai/gpt-4o/",
		"openai/gpt 4o",
		"open ai/gpt-4o",
	} {
		if _, err := ParseModelRef(c); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestModelRef_UnknownModelTravelsInOptions(t *testing.T) {
	e, err := modelNameValues.Parse("mistral/large-2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ref, err := ModelRefOf(e)
	if err != nil {
		t.Fatalf("model ref: %v", err)
	}
	if ref.Provider != "mistral" || ref.Model != "large-2" {
		t.Fatalf("unexpected ref: %#v", ref)
	}
	if _, ok := ref.Known(); ok {
		t.Fatalf("expected unknown model")
	}

	model := ref.Enum()
	opts, err := NewActOptions(ActOptionsParams{Model: &model})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if out, _ := jsonmodel.Encode(opts); string(out) != `{"model":"mistral/large-2"}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}
