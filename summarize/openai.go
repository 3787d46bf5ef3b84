package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"ytbrief/sanitize"
)

// OpenAI summarizes via the chat completions API.
type OpenAI struct {
	client *openai.Client
	prompt Prompt

	// Model is the completion model (default gpt-4o-mini).
	Model string
}

// NewOpenAI creates an OpenAI summary provider.
func NewOpenAI(apiKey string, prompt Prompt) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(apiKey),
		prompt: prompt,
		Model:  openai.GPT4oMini,
	}
}

// Summarize sends the transcript and returns the sanitized summary.
func (o *OpenAI) Summarize(ctx context.Context, transcript string) (string, error) {
	if transcript == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrSummarization)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: o.prompt.user(transcript)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarization, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion returned", ErrSummarization)
	}

	return sanitize.Clean(resp.Choices[0].Message.Content), nil
}

func (o *OpenAI) String() string {
	return fmt.Sprintf("openai-%s", o.Model)
}
