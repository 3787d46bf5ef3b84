package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv removes every variable Load consults so tests see only what
// they set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"YOUTUBE_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"YTBRIEF_SUMMARY_PROVIDER", "YTBRIEF_SUMMARY_POLICY",
		"YTBRIEF_MIN_SUMMARY_WORDS", "YTBRIEF_CHUNK_SIZE",
		"YTBRIEF_FONT_PATH", "YTBRIEF_OUTPUT_DIR",
		"YTBRIEF_YTDLP_PATH", "YTBRIEF_USER_AGENT",
		"YTBRIEF_DOWNLOAD_TIMEOUT", "YTBRIEF_TRANSCRIBE_TIMEOUT",
		"YTBRIEF_DELIVERY_TIMEOUT", "YTBRIEF_MAX_RETRIES",
		"YTBRIEF_INITIAL_BACKOFF", "YTBRIEF_MAX_BACKOFF",
		"YTBRIEF_BATCH_CONCURRENCY", "YTBRIEF_BATCH_RPS",
	}
	for _, v := range vars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

// validConfig returns a default config with the required credentials
// filled in.
func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.YouTubeAPIKey = "yt-key"
	cfg.OpenAIAPIKey = "oa-key"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SummaryProvider != "openai" {
		t.Errorf("SummaryProvider = %q, want openai", cfg.SummaryProvider)
	}
	if cfg.SummaryPolicy != "required" {
		t.Errorf("SummaryPolicy = %q, want required", cfg.SummaryPolicy)
	}
	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", cfg.ChunkSize)
	}
	if cfg.YtdlpPath != "yt-dlp" {
		t.Errorf("YtdlpPath = %q, want yt-dlp", cfg.YtdlpPath)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.YouTubeAPIKey != "" || cfg.OpenAIAPIKey != "" {
		t.Error("defaults must not carry credentials")
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{
			name:    "missing youtube key",
			mutate:  func(c *Config) { c.YouTubeAPIKey = "" },
			wantKey: "YOUTUBE_API_KEY",
		},
		{
			name:    "missing openai key",
			mutate:  func(c *Config) { c.OpenAIAPIKey = "" },
			wantKey: "OPENAI_API_KEY",
		},
		{
			name: "anthropic provider without key",
			mutate: func(c *Config) {
				c.SummaryProvider = "anthropic"
			},
			wantKey: "ANTHROPIC_API_KEY",
		},
		{
			name: "telegram chat without token",
			mutate: func(c *Config) {
				c.TelegramChatID = "@chan"
			},
			wantKey: "TELEGRAM_BOT_TOKEN",
		},
		{
			name: "telegram token without chat",
			mutate: func(c *Config) {
				c.TelegramBotToken = "123:abc"
			},
			wantKey: "TELEGRAM_CHAT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var mk *MissingKeyError
			if !errors.As(err, &mk) {
				t.Fatalf("Validate() = %v, want MissingKeyError", err)
			}
			if mk.Key != tt.wantKey {
				t.Errorf("missing key = %q, want %q", mk.Key, tt.wantKey)
			}
		})
	}
}

func TestValidateAnthropicWithKey(t *testing.T) {
	cfg := validConfig()
	cfg.SummaryProvider = "anthropic"
	cfg.AnthropicAPIKey = "sk-ant"

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.SummaryProvider = "gemini" }},
		{"unknown policy", func(c *Config) { c.SummaryPolicy = "maybe" }},
		{"negative min words", func(c *Config) { c.MinSummaryWords = -1 }},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }},
		{"zero download timeout", func(c *Config) { c.DownloadTimeout = 0 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"max backoff below initial", func(c *Config) { c.MaxBackoff = c.InitialBackoff / 2 }},
		{"zero batch concurrency", func(c *Config) { c.BatchConcurrency = 0 }},
		{"negative batch rps", func(c *Config) { c.BatchRPS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", "env-yt")
	t.Setenv("OPENAI_API_KEY", "env-oa")
	t.Setenv("YTBRIEF_SUMMARY_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "env-ant")
	t.Setenv("YTBRIEF_CHUNK_SIZE", "500")
	t.Setenv("YTBRIEF_DOWNLOAD_TIMEOUT", "5m")
	t.Setenv("YTBRIEF_BATCH_RPS", "2.5")

	cfg := DefaultConfig()
	cfg.loadFromEnv()

	if cfg.YouTubeAPIKey != "env-yt" {
		t.Errorf("YouTubeAPIKey = %q", cfg.YouTubeAPIKey)
	}
	if cfg.SummaryProvider != "anthropic" {
		t.Errorf("SummaryProvider = %q", cfg.SummaryProvider)
	}
	if cfg.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want 500", cfg.ChunkSize)
	}
	if cfg.DownloadTimeout != 5*time.Minute {
		t.Errorf("DownloadTimeout = %v, want 5m", cfg.DownloadTimeout)
	}
	if cfg.BatchRPS != 2.5 {
		t.Errorf("BatchRPS = %v, want 2.5", cfg.BatchRPS)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after env load = %v", err)
	}
}

func TestLoadFromEnvIgnoresMalformed(t *testing.T) {
	clearEnv(t)
	t.Setenv("YTBRIEF_CHUNK_SIZE", "lots")
	t.Setenv("YTBRIEF_DOWNLOAD_TIMEOUT", "soon")

	cfg := DefaultConfig()
	cfg.loadFromEnv()

	if cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want default 1000", cfg.ChunkSize)
	}
	if cfg.DownloadTimeout != 10*time.Minute {
		t.Errorf("DownloadTimeout = %v, want default 10m", cfg.DownloadTimeout)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ytbrief.json")
	data := `{"youtube_api_key":"file-yt","chunk_size":750,"summary_policy":"optional"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg := DefaultConfig()
	if err := cfg.loadFromFile(); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if cfg.YouTubeAPIKey != "file-yt" {
		t.Errorf("YouTubeAPIKey = %q, want file-yt", cfg.YouTubeAPIKey)
	}
	if cfg.ChunkSize != 750 {
		t.Errorf("ChunkSize = %d, want 750", cfg.ChunkSize)
	}
	if cfg.SummaryPolicy != "optional" {
		t.Errorf("SummaryPolicy = %q, want optional", cfg.SummaryPolicy)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	data := `{"youtube_api_key":"file-yt","openai_api_key":"file-oa"}`
	if err := os.WriteFile(filepath.Join(dir, "ytbrief.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("YOUTUBE_API_KEY", "env-yt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.YouTubeAPIKey != "env-yt" {
		t.Errorf("YouTubeAPIKey = %q, env should win over file", cfg.YouTubeAPIKey)
	}
	if cfg.OpenAIAPIKey != "file-oa" {
		t.Errorf("OpenAIAPIKey = %q, want file value", cfg.OpenAIAPIKey)
	}
}

func TestDeliveryEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.DeliveryEnabled() {
		t.Error("delivery enabled without credentials")
	}
	cfg.TelegramBotToken = "123:abc"
	cfg.TelegramChatID = "@chan"
	if !cfg.DeliveryEnabled() {
		t.Error("delivery disabled with both credentials set")
	}
}
