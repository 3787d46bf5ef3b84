package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"ytbrief/sanitize"
)

// Anthropic summarizes via the Claude messages API.
type Anthropic struct {
	client *anthropic.Client
	prompt Prompt

	// MaxTokens caps the summary length.
	MaxTokens int
}

// NewAnthropic creates an Anthropic summary provider.
func NewAnthropic(apiKey string, prompt Prompt) *Anthropic {
	return &Anthropic{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		prompt:    prompt,
		MaxTokens: 2048,
	}
}

// Summarize sends the transcript and returns the sanitized summary.
func (a *Anthropic) Summarize(ctx context.Context, transcript string) (string, error) {
	if transcript == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrSummarization)
	}

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(anthropic.ModelClaude3_5HaikuLatest),
		MaxTokens: anthropic.Int(int64(a.MaxTokens)),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(a.prompt.System),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(a.prompt.user(transcript))),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrSummarization)
	}

	return sanitize.Clean(resp.Content[0].Text), nil
}

func (a *Anthropic) String() string {
	return "anthropic-claude-3-5-haiku"
}
