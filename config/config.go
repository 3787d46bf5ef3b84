// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MissingKeyError names a required credential that was not supplied.
// Configuration fails fast with this error before any pipeline run,
// instead of failing deep inside a stage.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config: missing required key %s", e.Key)
}

// Config holds all application configuration for report generation.
type Config struct {
	// YouTubeAPIKey authenticates Data API metadata calls.
	YouTubeAPIKey string `json:"youtube_api_key"`
	// OpenAIAPIKey authenticates Whisper transcription and, when the
	// openai provider is selected, summarization.
	OpenAIAPIKey string `json:"openai_api_key"`
	// AnthropicAPIKey is required only for the anthropic provider.
	AnthropicAPIKey string `json:"anthropic_api_key"`
	// TelegramBotToken and TelegramChatID enable delivery. Both must
	// be set together; leaving both empty disables delivery.
	TelegramBotToken string `json:"telegram_bot_token"`
	TelegramChatID   string `json:"telegram_chat_id"`

	// SummaryProvider selects the summary backend: "openai" or "anthropic".
	SummaryProvider string `json:"summary_provider"`
	// SummaryPolicy is "required" (failure aborts the run) or
	// "optional" (report rendered without a summary).
	SummaryPolicy string `json:"summary_policy"`
	// MinSummaryWords is the transcript length below which a
	// placeholder replaces the summarization call (0 disables).
	MinSummaryWords int `json:"min_summary_words"`

	// ChunkSize is the transcript block size in the rendered report.
	ChunkSize int `json:"chunk_size"`
	// FontPath optionally points at a UTF-8 TTF font for the report.
	FontPath string `json:"font_path"`
	// OutputDir receives rendered reports ("" = temp dir per run).
	OutputDir string `json:"output_dir"`

	// YtdlpPath is the path to the yt-dlp executable (default "yt-dlp").
	YtdlpPath string `json:"ytdlp_path"`
	// UserAgent optionally overrides the downloader's user agent.
	UserAgent string `json:"user_agent"`
	// DownloadTimeout bounds one yt-dlp invocation.
	DownloadTimeout time.Duration `json:"download_timeout"`
	// TranscribeTimeout bounds one transcription call.
	TranscribeTimeout time.Duration `json:"transcribe_timeout"`
	// DeliveryTimeout bounds one delivery attempt.
	DeliveryTimeout time.Duration `json:"delivery_timeout"`

	// MaxRetries is the download retry budget for transient failures.
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial retry backoff duration.
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum retry backoff duration.
	MaxBackoff time.Duration `json:"max_backoff"`

	// BatchConcurrency bounds parallel runs in channel analysis.
	BatchConcurrency int `json:"batch_concurrency"`
	// BatchRPS paces run starts in channel analysis (0 = unpaced).
	BatchRPS float64 `json:"batch_rps"`
}

// DefaultConfig returns configuration with safe defaults. Credentials
// have no defaults and must come from the environment or config file.
func DefaultConfig() *Config {
	return &Config{
		SummaryProvider:   "openai",
		SummaryPolicy:     "required",
		MinSummaryWords:   100,
		ChunkSize:         1000,
		YtdlpPath:         "yt-dlp",
		DownloadTimeout:   10 * time.Minute,
		TranscribeTimeout: 15 * time.Minute,
		DeliveryTimeout:   30 * time.Second,
		MaxRetries:        3,
		InitialBackoff:    2 * time.Second,
		MaxBackoff:        30 * time.Second,
		BatchConcurrency:  1,
		BatchRPS:          0.5,
	}
}

// Load loads configuration from environment variables, an optional
// .env file, an optional config file, and applies defaults.
// Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	// .env files are a convenience for local runs; absence is normal.
	godotenv.Load(".env.local", ".env")

	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytbrief.json in the
// current directory or the user's config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytbrief.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytbrief", "ytbrief.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables. Credentials
// use the service's conventional names; tunables use the YTBRIEF_
// prefix.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.TelegramChatID = v
	}
	if v := os.Getenv("YTBRIEF_SUMMARY_PROVIDER"); v != "" {
		c.SummaryProvider = v
	}
	if v := os.Getenv("YTBRIEF_SUMMARY_POLICY"); v != "" {
		c.SummaryPolicy = v
	}
	if v := os.Getenv("YTBRIEF_MIN_SUMMARY_WORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MinSummaryWords = n
		}
	}
	if v := os.Getenv("YTBRIEF_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ChunkSize = n
		}
	}
	if v := os.Getenv("YTBRIEF_FONT_PATH"); v != "" {
		c.FontPath = v
	}
	if v := os.Getenv("YTBRIEF_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("YTBRIEF_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("YTBRIEF_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("YTBRIEF_DOWNLOAD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DownloadTimeout = d
		}
	}
	if v := os.Getenv("YTBRIEF_TRANSCRIBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TranscribeTimeout = d
		}
	}
	if v := os.Getenv("YTBRIEF_DELIVERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DeliveryTimeout = d
		}
	}
	if v := os.Getenv("YTBRIEF_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("YTBRIEF_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTBRIEF_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
	if v := os.Getenv("YTBRIEF_BATCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BatchConcurrency = n
		}
	}
	if v := os.Getenv("YTBRIEF_BATCH_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.BatchRPS = f
		}
	}
}

// Validate checks that configuration values are valid and consistent,
// and that every credential the selected features need is present.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return &MissingKeyError{Key: "YOUTUBE_API_KEY"}
	}
	if c.OpenAIAPIKey == "" {
		return &MissingKeyError{Key: "OPENAI_API_KEY"}
	}

	switch c.SummaryProvider {
	case "openai":
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return &MissingKeyError{Key: "ANTHROPIC_API_KEY"}
		}
	default:
		return fmt.Errorf("config: unknown summary_provider %q", c.SummaryProvider)
	}

	switch c.SummaryPolicy {
	case "required", "optional":
	default:
		return fmt.Errorf("config: unknown summary_policy %q", c.SummaryPolicy)
	}

	// Delivery credentials come as a pair.
	if (c.TelegramBotToken == "") != (c.TelegramChatID == "") {
		if c.TelegramBotToken == "" {
			return &MissingKeyError{Key: "TELEGRAM_BOT_TOKEN"}
		}
		return &MissingKeyError{Key: "TELEGRAM_CHAT_ID"}
	}

	if c.MinSummaryWords < 0 {
		return fmt.Errorf("config: min_summary_words must be non-negative")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("config: chunk_size must be positive")
	}
	if c.DownloadTimeout <= 0 || c.TranscribeTimeout <= 0 {
		return fmt.Errorf("config: timeouts must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 || c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("config: backoff range is invalid")
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("config: batch_concurrency must be at least 1")
	}
	if c.BatchRPS < 0 {
		return fmt.Errorf("config: batch_rps must be non-negative")
	}
	return nil
}

// DeliveryEnabled reports whether Telegram delivery is configured.
func (c *Config) DeliveryEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}
