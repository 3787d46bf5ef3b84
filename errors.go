package ytbrief

import (
	"ytbrief/audio"
	"ytbrief/internal/retry"
	"ytbrief/pipeline"
	"ytbrief/report"
	"ytbrief/telegram"
	"ytbrief/transcribe"
	"ytbrief/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytbrief.ErrVideoNotFound) {
//		fmt.Println("video not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var dlErr *ytbrief.DownloadError
//	if errors.As(err, &dlErr) {
//		fmt.Printf("download failed: %s\n", dlErr.Reason)
//	}

// Exported error types from sub-packages:
//
// From youtube package:
//   - youtube.ErrInvalidURL: URL carries no extractable video ID
//   - youtube.ErrVideoNotFound: Video does not exist or is hidden
//   - youtube.ErrChannelNotFound: Channel could not be resolved
//   - youtube.ErrMissingAPIKey: No Data API key configured
//   - youtube.ServiceError: Data API call failure with HTTP code
//
// From audio package:
//   - audio.ErrExtractionFailed: Audio missing, undersized, or corrupt
//   - audio.DownloadError: yt-dlp failure with classified reason
//
// From transcribe package:
//   - transcribe.ErrTranscription: Transcription service failure
//   - transcribe.ErrEmptyTranscript: Service returned no usable text
//
// From summarize package:
//   - summarize.ErrSummarization: Summary provider failure
//
// From report package:
//   - report.ErrRender: PDF assembly or persistence failure
//
// From telegram package:
//   - telegram.ErrUnauthorized: Bot token rejected
//   - telegram.ErrPayloadTooLarge: Document exceeds the Bot API limit
//
// From pipeline package:
//   - pipeline.StageError: Terminal failure naming the failed stage

// Type aliases for convenient error handling.
type (
	// StageError is a pipeline run's terminal failure.
	StageError = pipeline.StageError
	// ServiceError wraps YouTube Data API failures.
	ServiceError = youtube.ServiceError
	// DownloadError wraps audio acquisition failures.
	DownloadError = audio.DownloadError
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidURL indicates the URL carries no 11-character video ID.
	ErrInvalidURL = youtube.ErrInvalidURL
	// ErrVideoNotFound indicates the video does not exist or is hidden.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrChannelNotFound indicates the channel could not be resolved.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrExtractionFailed indicates the audio artifact failed validation.
	ErrExtractionFailed = audio.ErrExtractionFailed
	// ErrTranscription indicates the transcription service failed.
	ErrTranscription = transcribe.ErrTranscription
	// ErrEmptyTranscript indicates transcription produced no usable text.
	ErrEmptyTranscript = transcribe.ErrEmptyTranscript
	// ErrRender indicates the report could not be assembled or persisted.
	ErrRender = report.ErrRender
	// ErrUnauthorized indicates the Telegram bot token was rejected.
	ErrUnauthorized = telegram.ErrUnauthorized
	// ErrPayloadTooLarge indicates the report exceeds the delivery limit.
	ErrPayloadTooLarge = telegram.ErrPayloadTooLarge
)

// IsRetryable determines if an error should be retried.
// It returns false for context cancellation and deadline errors.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}
