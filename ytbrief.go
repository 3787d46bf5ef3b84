package ytbrief

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"ytbrief/audio"
	"ytbrief/config"
	"ytbrief/internal/retry"
	"ytbrief/pipeline"
	"ytbrief/report"
	"ytbrief/summarize"
	"ytbrief/telegram"
	"ytbrief/transcribe"
	"ytbrief/youtube"
)

// ProcessVideo runs the full pipeline for one video URL using the given
// configuration. It returns the run's Result; when the run failed, the
// returned error is the Result's *StageError and the Result still
// carries everything produced before the failure.
func ProcessVideo(ctx context.Context, cfg *config.Config, url string) (*pipeline.Result, error) {
	p, err := BuildPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	res := p.Run(ctx, url)
	return res, res.Err
}

// AnalyzeChannel runs the pipeline over a channel's most recent uploads
// (up to max; 0 means the configured page size). Individual video
// failures are recorded per outcome; the returned error is set only
// when the listing itself fails.
func AnalyzeChannel(ctx context.Context, cfg *config.Config, channel string, max int) ([]pipeline.VideoOutcome, error) {
	p, err := BuildPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// The metadata client doubles as the channel lister.
	lister, ok := p.Metadata.(pipeline.ChannelLister)
	if !ok {
		return nil, fmt.Errorf("metadata fetcher cannot list channels")
	}

	b := pipeline.NewBatch(p, lister)
	b.Concurrency = cfg.BatchConcurrency
	if cfg.BatchRPS > 0 {
		b.Limiter = rate.NewLimiter(rate.Limit(cfg.BatchRPS), 1)
	}

	return b.Run(ctx, channel, max)
}

// BuildPipeline assembles a Pipeline from configuration. The config
// must already be validated; Load does that.
func BuildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	meta, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}

	dl := audio.NewDownloader()
	dl.YtdlpPath = cfg.YtdlpPath
	dl.Timeout = cfg.DownloadTimeout
	dl.UserAgent = cfg.UserAgent
	dl.Retry = retry.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}

	whisper := transcribe.NewWhisper(cfg.OpenAIAPIKey)
	whisper.Timeout = cfg.TranscribeTimeout

	provider := summarize.New(
		summarize.ProviderName(cfg.SummaryProvider),
		providerKey(cfg),
		summarize.DefaultPrompt(),
	)
	if provider == nil {
		return nil, fmt.Errorf("unknown summary provider %q", cfg.SummaryProvider)
	}

	renderer := report.NewRenderer()
	renderer.ChunkSize = cfg.ChunkSize
	renderer.FontPath = cfg.FontPath
	renderer.OutputDir = cfg.OutputDir

	p := pipeline.New(meta, dl, whisper, provider, renderer)
	p.MinSummaryWords = cfg.MinSummaryWords
	if cfg.SummaryPolicy == "optional" {
		p.SummaryPolicy = pipeline.SummaryOptional
	}
	p.Caption = telegram.DefaultCaption

	if cfg.DeliveryEnabled() {
		sender, err := telegram.NewSender(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.DeliveryTimeout)
		if err != nil {
			return nil, fmt.Errorf("telegram sender: %w", err)
		}
		p.Deliverer = sender
	}

	return p, nil
}

func providerKey(cfg *config.Config) string {
	if cfg.SummaryProvider == "anthropic" {
		return cfg.AnthropicAPIKey
	}
	return cfg.OpenAIAPIKey
}
