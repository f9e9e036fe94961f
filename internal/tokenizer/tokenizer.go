// Package tokenizer estimates how many model tokens a generated document occupies.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

// CountResult captures the outcome of counting a document.
type CountResult struct {
	Tokens int
	Model  string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

var errNilCounter = errors.New("nil tokenizer counter")

var openAIModelPrefixes = []string{
	"gpt-",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a Counter for the requested model and the name of the encoding in use.
// Models without a known tiktoken encoding are approximated with cl100k_base.
func NewCounter(cfg Config) (Counter, string, error) {
	model := strings.ToLower(strings.TrimSpace(cfg.Model))
	if model == "" {
		model = defaultModel
	}

	if isOpenAIModel(model) {
		encoding, encodingError := tiktoken.EncodingForModel(model)
		if encodingError == nil && encoding != nil {
			return openAICounter{encoding: encoding, name: model}, model, nil
		}
	}

	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// CountDocument estimates the tokens in document using counter.
func CountDocument(counter Counter, document string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	tokens, countError := counter.CountString(document)
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Model: counter.Name()}, nil
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
