// Package summarize condenses transcripts through a language-model
// completion API.
package summarize

import (
	"context"
	"errors"
)

// ErrSummarization indicates the completion call failed.
var ErrSummarization = errors.New("summarize: summary generation failed")

// Provider generates a summary from a transcript.
type Provider interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	String() string
}

// ProviderName selects a summary backend.
type ProviderName string

const (
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
)

// New builds the named provider with the given API key and prompt.
// An unknown name returns nil; callers validate at configuration time.
func New(name ProviderName, apiKey string, prompt Prompt) Provider {
	switch name {
	case ProviderOpenAI:
		return NewOpenAI(apiKey, prompt)
	case ProviderAnthropic:
		return NewAnthropic(apiKey, prompt)
	}
	return nil
}
