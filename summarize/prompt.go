package summarize

import "fmt"

// Prompt holds the system instruction and the user-message template a
// provider sends alongside the transcript. UserFormat must contain one
// %s verb for the transcript text.
type Prompt struct {
	System     string
	UserFormat string
}

// DefaultPrompt asks for a concise summary that scales with transcript
// length.
func DefaultPrompt() Prompt {
	return Prompt{
		System: "You are a helpful assistant that summarizes video content.",
		UserFormat: "Create a concise summary (roughly 100 words for short videos, " +
			"up to a few hundred for long ones) of this video transcription:\n\n%s",
	}
}

// user renders the user message for a transcript.
func (p Prompt) user(transcript string) string {
	return fmt.Sprintf(p.UserFormat, transcript)
}
