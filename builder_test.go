package tiktoken

import (
	"errors"
	"testing"
)

func TestEncoderForModelExactMatch(t *testing.T) {
	cases := map[string]EncoderName{
		"gpt-4":            Cl100kBase,
		"gpt-3.5-turbo":    Cl100kBase,
		"text-davinci-003": P50kBase,
		"davinci":          R50kBase,
		"gpt2":             GPT2,
	}
	for model, want := range cases {
		got, ok := encoderForModel(model)
		if !ok || got != want {
			t.Errorf("encoderForModel(%q) = %q, %v; want %q, true", model, got, ok, want)
		}
	}
}

func TestEncoderForModelPrefixMatch(t *testing.T) {
	cases := map[string]EncoderName{
		"gpt-4-32k":                   Cl100kBase,
		"gpt-3.5-turbo-16k":           Cl100kBase,
		"text-similarity-ada-001":     R50kBase,
		"text-search-babbage-doc-001": R50kBase,
		"code-search-ada-code-001":    R50kBase,
	}
	for model, want := range cases {
		got, ok := encoderForModel(model)
		if !ok || got != want {
			t.Errorf("encoderForModel(%q) = %q, %v; want %q, true", model, got, ok, want)
		}
	}
}

func TestEncoderForModelUnknown(t *testing.T) {
	if _, ok := encoderForModel("not-a-real-model"); ok {
		t.Fatal("expected no match for an unknown model name")
	}
}

func TestCreateByModelNameUnknownModelWrapsSentinel(t *testing.T) {
	_, err := CreateByModelName("not-a-real-model", nil)
	if !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestCreateByEncoderNameWithSpecialsUnknownEncoderWrapsSentinel(t *testing.T) {
	_, err := CreateByEncoderNameWithSpecials(EncoderName("not-a-real-encoder"), nil)
	if !errors.Is(err, ErrUnknownEncoder) {
		t.Fatalf("expected ErrUnknownEncoder, got %v", err)
	}
}

func TestCreateByEncoderNameWithSpecialsOverridesDefaults(t *testing.T) {
	// The vocabulary/pattern download this exercises requires network
	// access to the real encoding files; skip when that's unavailable.
	enc, err := CreateByEncoderNameWithSpecials(Cl100kBase, map[string]Rank{"<|endoftext|>": 999999})
	if err != nil {
		t.Skipf("cl100k_base vocabulary unavailable in this environment: %v", err)
	}
	if r := enc.SpecialTokens()["<|endoftext|>"]; r != 999999 {
		t.Fatalf("caller-supplied special did not override default, got rank %d", r)
	}
}
