package summarize

import (
	"strings"
	"testing"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name ProviderName
		want string
	}{
		{ProviderOpenAI, "openai"},
		{ProviderAnthropic, "anthropic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			p := New(tt.name, "test-key", DefaultPrompt())
			if p == nil {
				t.Fatal("New returned nil for known provider")
			}
			// Providers name themselves "provider-model".
			if !strings.HasPrefix(p.String(), tt.want) {
				t.Errorf("String() = %q, want %q prefix", p.String(), tt.want)
			}
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if p := New("gemini", "key", DefaultPrompt()); p != nil {
		t.Errorf("New with unknown name = %v, want nil", p)
	}
}

func TestPromptUserEmbedsTranscript(t *testing.T) {
	p := DefaultPrompt()
	msg := p.user("the quick brown fox")

	if !strings.Contains(msg, "the quick brown fox") {
		t.Errorf("user message does not contain transcript: %q", msg)
	}
	if strings.Contains(msg, "%s") {
		t.Errorf("user message has unexpanded verb: %q", msg)
	}
}

func TestPromptCustomFormat(t *testing.T) {
	p := Prompt{System: "sys", UserFormat: "Summarize: %s"}
	if got := p.user("abc"); got != "Summarize: abc" {
		t.Errorf("user() = %q", got)
	}
}
