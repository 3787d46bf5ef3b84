// Package pipeline runs the linear video-to-report processing chain:
// identify, fetch metadata, acquire audio, transcribe, summarize,
// render, and optionally deliver.
//
// Control flows strictly forward. Each stage consumes the previous
// stage's output and is skipped entirely once a predecessor has
// failed; the first failure is terminal for the run. The pipeline
// itself never retries — retry policy lives inside the collaborators.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ytbrief/audio"
	"ytbrief/report"
	"ytbrief/transcribe"
	"ytbrief/youtube"
)

// Stage names one step of the pipeline.
type Stage int

const (
	StageIdentify Stage = iota
	StageMetadata
	StageAcquire
	StageTranscribe
	StageSummarize
	StageRender
	StageDeliver
)

func (s Stage) String() string {
	switch s {
	case StageIdentify:
		return "identify"
	case StageMetadata:
		return "metadata-fetch"
	case StageAcquire:
		return "audio-acquire"
	case StageTranscribe:
		return "transcribe"
	case StageSummarize:
		return "summarize"
	case StageRender:
		return "render"
	case StageDeliver:
		return "deliver"
	}
	return "unknown"
}

// State is how far a run has progressed.
type State int

const (
	StateIdle State = iota
	StateIdentified
	StateMetadataFetched
	StateAudioAcquired
	StateTranscribed
	StateSummarized
	StateRendered
	StateDelivered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIdentified:
		return "identified"
	case StateMetadataFetched:
		return "metadata-fetched"
	case StateAudioAcquired:
		return "audio-acquired"
	case StateTranscribed:
		return "transcribed"
	case StateSummarized:
		return "summarized"
	case StateRendered:
		return "rendered"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// StageError is the terminal failure of a run: it names the stage that
// failed and wraps the collaborator's error kind.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Collaborator contracts. Each stage is a thin call into one of these;
// the pipeline owns ordering and ownership, not the work itself.
type (
	// MetadataFetcher resolves a video ID to its metadata.
	MetadataFetcher interface {
		FetchDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
	}

	// AudioAcquirer downloads and validates an audio artifact.
	AudioAcquirer interface {
		Acquire(ctx context.Context, url string) (*audio.Artifact, error)
	}

	// Transcriber converts a validated artifact to text. The pipeline
	// retains artifact ownership and releases it when the stage ends.
	Transcriber interface {
		Transcribe(ctx context.Context, art *audio.Artifact) (*transcribe.Transcript, error)
	}

	// Summarizer condenses a transcript.
	Summarizer interface {
		Summarize(ctx context.Context, transcript string) (string, error)
	}

	// Renderer assembles the report document.
	Renderer interface {
		Render(details *youtube.VideoDetails, transcript, summary string) (*report.Document, error)
	}

	// Deliverer pushes the finished document to a channel.
	Deliverer interface {
		Deliver(ctx context.Context, doc *report.Document, caption string) error
	}
)

// SummaryPolicy decides what a summarization failure means for the run.
type SummaryPolicy int

const (
	// SummaryRequired aborts the run when summarization fails.
	SummaryRequired SummaryPolicy = iota
	// SummaryOptional records the failure and renders the report
	// without a summary section.
	SummaryOptional
)

// DefaultPlaceholder is substituted for transcripts below the minimum
// word threshold, in place of a summarization call.
const DefaultPlaceholder = "Transcript too short for a meaningful summary."

// Pipeline wires the collaborators for single-video runs. Construct
// with New and adjust public fields before the first Run.
type Pipeline struct {
	Metadata    MetadataFetcher
	Acquirer    AudioAcquirer
	Transcriber Transcriber
	Summarizer  Summarizer
	Renderer    Renderer
	// Deliverer is optional; nil skips the delivery stage.
	Deliverer Deliverer

	// MinSummaryWords is the transcript word count below which the
	// placeholder is substituted and the Summarizer never called.
	// Zero disables the substitution.
	MinSummaryWords int
	// Placeholder overrides DefaultPlaceholder.
	Placeholder string
	// SummaryPolicy selects abort-vs-continue on summarization failure.
	SummaryPolicy SummaryPolicy
	// Caption is passed to the Deliverer.
	Caption string

	// OnStage is invoked as each stage begins (optional, for progress
	// display). It must not block.
	OnStage func(stage Stage)

	Log zerolog.Logger
}

// New returns a pipeline over the given collaborators with a no-op
// logger.
func New(meta MetadataFetcher, acq AudioAcquirer, tr Transcriber, sum Summarizer, ren Renderer) *Pipeline {
	return &Pipeline{
		Metadata:    meta,
		Acquirer:    acq,
		Transcriber: tr,
		Summarizer:  sum,
		Renderer:    ren,
		Log:         zerolog.Nop(),
	}
}

// Result is everything a run produced. All artifacts are owned by the
// caller once Run returns; in particular the Document survives a
// failed delivery and remains valid.
type Result struct {
	URL     string
	VideoID string
	Details *youtube.VideoDetails
	// Transcript is the sanitized transcript text.
	Transcript string
	// Language is the detected transcript language, if reported.
	Language string
	// Summary is the summary text; empty when omitted.
	Summary string
	// SummaryPlaceholder is true when the placeholder was substituted
	// instead of calling the Summarizer.
	SummaryPlaceholder bool
	// SummaryErr records a tolerated summarization failure under
	// SummaryOptional. Never set when Err is.
	SummaryErr error
	// Document is the rendered report, nil if the run failed earlier.
	Document *report.Document
	// State is the final state of the run.
	State State
	// Err is the terminal *StageError when State is StateFailed.
	Err error
	// DeliveryErr records a failed delivery attempt. It is kept apart
	// from Err: a rendered document with failed delivery is not a
	// failed run.
	DeliveryErr error

	Elapsed time.Duration
}

// Run executes the pipeline for one video URL. It always returns a
// Result; inspect Result.Err for terminal failure.
func (p *Pipeline) Run(ctx context.Context, url string) *Result {
	start := time.Now()
	res := &Result{URL: url, State: StateIdle}
	defer func() { res.Elapsed = time.Since(start) }()

	// Identify. Pure parsing: a bad URL halts before any network call.
	p.enter(StageIdentify)
	videoID, err := youtube.ExtractVideoID(url)
	if err != nil {
		return p.fail(res, StageIdentify, err)
	}
	res.VideoID = videoID
	res.State = StateIdentified

	// Metadata.
	p.enter(StageMetadata)
	details, err := p.Metadata.FetchDetails(ctx, videoID)
	if err != nil {
		return p.fail(res, StageMetadata, err)
	}
	res.Details = details
	res.State = StateMetadataFetched

	// Acquire.
	p.enter(StageAcquire)
	art, err := p.Acquirer.Acquire(ctx, url)
	if err != nil {
		return p.fail(res, StageAcquire, err)
	}
	res.State = StateAudioAcquired

	// Transcribe. The artifact is released when this stage ends,
	// success or failure.
	p.enter(StageTranscribe)
	transcript, err := p.transcribeAndRelease(ctx, art)
	if err != nil {
		return p.fail(res, StageTranscribe, err)
	}
	res.Transcript = transcript.Text
	res.Language = transcript.Language
	res.State = StateTranscribed

	// Summarize.
	p.enter(StageSummarize)
	summary, placeholder, serr := p.summarize(ctx, transcript.Text)
	switch {
	case serr != nil && p.SummaryPolicy == SummaryRequired:
		return p.fail(res, StageSummarize, serr)
	case serr != nil:
		res.SummaryErr = serr
		p.Log.Warn().Err(serr).Msg("continuing without summary")
	default:
		res.Summary = summary
		res.SummaryPlaceholder = placeholder
	}
	res.State = StateSummarized

	// Render.
	p.enter(StageRender)
	doc, err := p.Renderer.Render(details, transcript.Text, res.Summary)
	if err != nil {
		return p.fail(res, StageRender, err)
	}
	res.Document = doc
	res.State = StateRendered

	// Deliver, optionally. Failure is recorded, never fatal, and the
	// document stays valid for the caller to retry.
	if p.Deliverer != nil {
		p.enter(StageDeliver)
		if err := p.Deliverer.Deliver(ctx, doc, p.Caption); err != nil {
			res.DeliveryErr = &StageError{Stage: StageDeliver, Err: err}
			p.Log.Warn().Err(err).Msg("delivery failed, report retained")
			return res
		}
		res.State = StateDelivered
	}

	return res
}

// transcribeAndRelease dispatches transcription to a worker goroutine
// so the caller stays responsive to cancellation, then releases the
// artifact's backing storage no matter how the stage ended.
func (p *Pipeline) transcribeAndRelease(ctx context.Context, art *audio.Artifact) (*transcribe.Transcript, error) {
	defer func() {
		if err := art.Remove(); err != nil {
			p.Log.Warn().Err(err).Msg("failed to remove audio artifact")
		}
	}()

	type outcome struct {
		t   *transcribe.Transcript
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		t, err := p.Transcriber.Transcribe(ctx, art)
		done <- outcome{t, err}
	}()

	select {
	case o := <-done:
		return o.t, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// summarize applies the short-transcript substitution, then calls the
// Summarizer. Exactly one of the two happens, never a partial call.
func (p *Pipeline) summarize(ctx context.Context, transcript string) (summary string, placeholder bool, err error) {
	if p.MinSummaryWords > 0 && wordCount(transcript) < p.MinSummaryWords {
		text := p.Placeholder
		if text == "" {
			text = DefaultPlaceholder
		}
		return text, true, nil
	}

	if p.Summarizer == nil {
		return "", false, nil
	}

	summary, err = p.Summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", false, err
	}
	return summary, false, nil
}

func (p *Pipeline) fail(res *Result, stage Stage, err error) *Result {
	res.State = StateFailed
	res.Err = &StageError{Stage: stage, Err: err}
	p.Log.Error().Stringer("stage", stage).Err(err).Msg("pipeline run failed")
	return res
}

func (p *Pipeline) enter(stage Stage) {
	p.Log.Debug().Stringer("stage", stage).Msg("entering stage")
	if p.OnStage != nil {
		p.OnStage(stage)
	}
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
