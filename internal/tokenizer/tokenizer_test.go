package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestCountDocument(t *testing.T) {
	result, err := CountDocument(testCounter{}, "# a\n- [a/x.md](a/x.md)")
	if err != nil {
		t.Fatalf("CountDocument error: %v", err)
	}
	if result.Tokens != len([]rune("# a\n- [a/x.md](a/x.md)")) {
		t.Fatalf("unexpected token count %d", result.Tokens)
	}
	if result.Model != "stub" {
		t.Fatalf("expected model stub, got %q", result.Model)
	}
}

func TestCountDocumentNilCounter(t *testing.T) {
	if _, err := CountDocument(nil, "text"); !errors.Is(err, errNilCounter) {
		t.Fatalf("expected errNilCounter, got %v", err)
	}
}

func TestCountDocumentPropagatesErrors(t *testing.T) {
	if _, err := CountDocument(failingCounter{}, "text"); err == nil {
		t.Fatalf("expected error from failing counter")
	}
}

func TestIsOpenAIModel(t *testing.T) {
	cases := map[string]bool{
		"gpt-4o":                 true,
		"text-embedding-3-small": true,
		"claude-3-5-sonnet":      false,
		"llama-3":                false,
	}
	for model, expected := range cases {
		if actual := isOpenAIModel(model); actual != expected {
			t.Errorf("isOpenAIModel(%q) = %t, expected %t", model, actual, expected)
		}
	}
}
