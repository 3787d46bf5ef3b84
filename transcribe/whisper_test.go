package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ytbrief/audio"
)

func TestTranscribeRejectsMissingArtifact(t *testing.T) {
	w := NewWhisper("test-key")

	if _, err := w.Transcribe(context.Background(), nil); !errors.Is(err, ErrTranscription) {
		t.Errorf("Transcribe(nil) = %v, want ErrTranscription", err)
	}

	// Artifact whose backing file is already gone.
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.wav")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	art := audio.NewArtifact(path, "")
	os.Remove(path)

	if _, err := w.Transcribe(context.Background(), art); !errors.Is(err, ErrTranscription) {
		t.Errorf("Transcribe(removed artifact) = %v, want ErrTranscription", err)
	}
}

func TestNewWhisperDefaults(t *testing.T) {
	w := NewWhisper("test-key")
	if w.Model == "" {
		t.Error("default model not set")
	}
	if w.Timeout <= 0 {
		t.Error("default timeout not set")
	}
}
