package audio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytbrief/internal/retry"
)

// FailureReason classifies why a download failed, distinguishing
// permanent causes the caller cannot fix by retrying from transient
// ones worth another attempt.
type FailureReason string

const (
	ReasonAgeRestricted FailureReason = "age-restricted"
	ReasonPrivate       FailureReason = "private"
	ReasonGeoBlocked    FailureReason = "geo-blocked"
	ReasonUnavailable   FailureReason = "unavailable"
	ReasonRateLimited   FailureReason = "rate-limited"
	ReasonNetwork       FailureReason = "network"
	ReasonUnknown       FailureReason = "unknown"
)

// Permanent reports whether retrying cannot help.
func (r FailureReason) Permanent() bool {
	switch r {
	case ReasonAgeRestricted, ReasonPrivate, ReasonGeoBlocked, ReasonUnavailable:
		return true
	}
	return false
}

// DownloadError wraps a failed acquisition attempt with its classified
// reason.
type DownloadError struct {
	Reason FailureReason
	Err    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("audio: download failed (%s): %v", e.Reason, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Downloader acquires audio tracks via the yt-dlp executable. The
// extracted track is decoded to mono 16 kHz WAV, the format the
// transcription models expect.
type Downloader struct {
	// YtdlpPath is the yt-dlp executable (default "yt-dlp" from PATH).
	YtdlpPath string
	// Timeout bounds a single yt-dlp invocation.
	Timeout time.Duration
	// UserAgent overrides the extractor's user agent when set. Some
	// hosts block the default one.
	UserAgent string
	// Retry controls the internal retry budget for transient failures.
	Retry retry.Config
	// OnProgress receives raw yt-dlp progress lines (optional).
	OnProgress func(line string)
}

// NewDownloader returns a Downloader with defaults suitable for
// transcription input.
func NewDownloader() *Downloader {
	return &Downloader{
		YtdlpPath: "yt-dlp",
		Timeout:   10 * time.Minute,
		Retry: retry.Config{
			MaxRetries:     3,
			InitialBackoff: 2 * time.Second,
			MaxBackoff:     30 * time.Second,
			Multiplier:     2.0,
			JitterFraction: 0.2,
		},
	}
}

// Acquire downloads and extracts the audio track for url, validates it,
// and returns an Artifact the caller owns. Transient failures are
// retried within the configured budget; permanent ones (age
// restriction, private video, geo block) fail immediately with a
// *DownloadError carrying the reason. A download that completes but
// fails validation is deleted and reported as ErrExtractionFailed.
func (d *Downloader) Acquire(ctx context.Context, url string) (*Artifact, error) {
	dir := filepath.Join(os.TempDir(), "ytbrief-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create download directory: %w", err)
	}

	var path string
	err := retry.Do(ctx, d.Retry, downloadRetryable, func(ctx context.Context) error {
		var derr error
		path, derr = d.runYtdlp(ctx, url, dir)
		return derr
	})
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	if err := Validate(path); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return &Artifact{Path: path, Size: info.Size(), dir: dir}, nil
}

// runYtdlp performs one extraction attempt into dir and returns the
// path of the produced WAV file.
func (d *Downloader) runYtdlp(ctx context.Context, url, dir string) (string, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	ytdlp := d.YtdlpPath
	if ytdlp == "" {
		ytdlp = "yt-dlp"
	}

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "wav",
		"--postprocessor-args", "ffmpeg:-ar 16000 -ac 1",
		"--no-playlist",
		"--no-warnings",
		"--newline",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
	}
	if d.UserAgent != "" {
		args = append(args, "--user-agent", d.UserAgent)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, ytdlp, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if d.OnProgress != nil {
		stdout, err := cmd.StdoutPipe()
		if err == nil {
			go func() {
				scanner := bufio.NewScanner(stdout)
				for scanner.Scan() {
					d.OnProgress(scanner.Text())
				}
			}()
		}
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &DownloadError{Reason: ReasonNetwork, Err: ctx.Err()}
		}
		reason := classifyStderr(stderr.String())
		return "", &DownloadError{
			Reason: reason,
			Err:    fmt.Errorf("yt-dlp: %v: %s", err, firstLine(stderr.String())),
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("%w: yt-dlp produced no wav output", ErrExtractionFailed)
	}
	return matches[0], nil
}

// downloadRetryable is the retry classifier for acquisition: transient
// download errors retry, permanent reasons and validation failures do
// not.
func downloadRetryable(err error) bool {
	if !retry.IsRetryable(err) {
		return false
	}
	var derr *DownloadError
	if errors.As(err, &derr) {
		return !derr.Reason.Permanent()
	}
	// Validation and unexpected failures are not retried.
	return false
}

// classifyStderr maps yt-dlp error output to a failure reason.
func classifyStderr(stderr string) FailureReason {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "sign in to confirm your age"),
		strings.Contains(s, "age-restricted"),
		strings.Contains(s, "age restricted"):
		return ReasonAgeRestricted
	case strings.Contains(s, "private video"),
		strings.Contains(s, "this video is private"):
		return ReasonPrivate
	case strings.Contains(s, "available in your country"),
		strings.Contains(s, "geo restricted"),
		strings.Contains(s, "blocked in your country"):
		return ReasonGeoBlocked
	case strings.Contains(s, "video unavailable"),
		strings.Contains(s, "has been removed"):
		return ReasonUnavailable
	case strings.Contains(s, "429"),
		strings.Contains(s, "too many requests"),
		strings.Contains(s, "rate-limit"):
		return ReasonRateLimited
	case strings.Contains(s, "timed out"),
		strings.Contains(s, "connection"),
		strings.Contains(s, "network"),
		strings.Contains(s, "unable to download"):
		return ReasonNetwork
	}
	return ReasonUnknown
}

// firstLine trims stderr down to its first informative line.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i != -1 {
		s = s[:i]
	}
	return s
}
