// Package ytbrief turns YouTube videos into PDF transcript reports.
//
// It runs a linear pipeline per video: identify the video from its URL,
// fetch metadata, download and validate the audio track, transcribe it,
// summarize the transcript, render a PDF report, and optionally deliver
// the report to a Telegram chat.
//
// Overview
//
// ytbrief provides high-level convenience functions for the most common
// operations:
//
//   - ProcessVideo: Run the full pipeline for one video URL
//   - AnalyzeChannel: Run the pipeline over a channel's recent uploads
//
// Quick Start
//
// Process a single video:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := ytbrief.ProcessVideo(ctx, cfg, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("report:", res.Document.Path)
//
// Analyze a channel's recent uploads:
//
//	outcomes, err := ytbrief.AnalyzeChannel(ctx, cfg, "@somechannel", 10)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, o := range outcomes {
//		if o.Failed() {
//			fmt.Printf("%s: %v\n", o.Ref.ID, o.Result.Err)
//			continue
//		}
//		fmt.Printf("%s: %s\n", o.Ref.ID, o.Result.Document.Path)
//	}
//
// Configuration
//
// ytbrief uses a configuration system that loads settings from multiple
// sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytbrief.json or ~/.config/ytbrief/ytbrief.json)
//   3. Default values (lowest priority)
//
// Credentials use their services' conventional variable names:
//
//   - YOUTUBE_API_KEY: YouTube Data API key (required)
//   - OPENAI_API_KEY: OpenAI key for transcription and summaries (required)
//   - ANTHROPIC_API_KEY: Anthropic key (required for the anthropic provider)
//   - TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID: enable delivery (optional, paired)
//
// Tunables use the YTBRIEF_ prefix:
//
//   - YTBRIEF_SUMMARY_PROVIDER: "openai" or "anthropic"
//   - YTBRIEF_SUMMARY_POLICY: "required" or "optional"
//   - YTBRIEF_YTDLP_PATH: Path to yt-dlp executable
//   - YTBRIEF_OUTPUT_DIR: Directory for rendered reports
//   - YTBRIEF_MAX_RETRIES: Download retry attempts
//   - YTBRIEF_BATCH_CONCURRENCY: Parallel runs in channel analysis
//
// Error Handling
//
// All operations return errors that implement standard Go error handling.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytbrief.ErrInvalidURL) {
//		fmt.Println("not a YouTube video URL")
//	}
//
// Extracting the failed pipeline stage:
//
//	var stageErr *ytbrief.StageError
//	if errors.As(err, &stageErr) {
//		fmt.Printf("failed at %s: %v\n", stageErr.Stage, stageErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - pipeline: Stage orchestration and channel batching
//   - youtube: Video identification, metadata, and channel listing
//   - audio: Audio acquisition and validation via yt-dlp
//   - transcribe: Whisper transcription
//   - summarize: OpenAI and Anthropic summary providers
//   - report: PDF report rendering
//   - telegram: Report delivery
//   - config: Configuration management
//
// Example wiring the pipeline directly:
//
//	p := pipeline.New(meta, acquirer, whisper, provider, renderer)
//	p.MinSummaryWords = 100
//	res := p.Run(ctx, url)
//
// Dependencies
//
// ytbrief requires yt-dlp and ffmpeg to be installed and available in
// PATH, or yt-dlp specified via YTBRIEF_YTDLP_PATH.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
//
package ytbrief
