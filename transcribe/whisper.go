// Package transcribe converts audio artifacts to sanitized text using
// the OpenAI Whisper API.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ytbrief/audio"
	"ytbrief/sanitize"
)

// ErrTranscription indicates the speech-recognition call failed.
var ErrTranscription = errors.New("transcribe: transcription failed")

// ErrEmptyTranscript indicates the model returned no usable text.
var ErrEmptyTranscript = errors.New("transcribe: model returned empty transcript")

// Transcript is the sanitized output of a transcription. The text is
// cleaned exactly once at creation and never mutated afterwards.
type Transcript struct {
	// Text is the sanitized transcript.
	Text string
	// Language is the detected language code when the model reports
	// one ("en", "de", ...), empty otherwise.
	Language string
}

// Whisper transcribes audio through the hosted Whisper model.
type Whisper struct {
	client *openai.Client

	// Model is the transcription model (default whisper-1).
	Model string
	// Timeout bounds a single transcription call.
	Timeout time.Duration
}

// NewWhisper creates a Whisper transcriber with the given API key.
func NewWhisper(apiKey string) *Whisper {
	return &Whisper{
		client:  openai.NewClient(apiKey),
		Model:   openai.Whisper1,
		Timeout: 15 * time.Minute,
	}
}

// Transcribe sends the artifact's audio to the model and returns the
// sanitized transcript with the detected language. The caller retains
// ownership of the artifact and is responsible for releasing it.
func (w *Whisper) Transcribe(ctx context.Context, art *audio.Artifact) (*Transcript, error) {
	if art == nil || !art.Exists() {
		return nil, fmt.Errorf("%w: no audio artifact", ErrTranscription)
	}

	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.Model,
		FilePath: art.Path,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	text := sanitize.Clean(resp.Text)
	if text == "" {
		return nil, ErrEmptyTranscript
	}

	return &Transcript{Text: text, Language: resp.Language}, nil
}
