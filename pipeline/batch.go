package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"ytbrief/youtube"
)

// ChannelLister enumerates a channel's recent uploads.
type ChannelLister interface {
	RecentUploads(ctx context.Context, channel string, max int) ([]youtube.VideoRef, error)
}

// VideoOutcome is one video's result within a channel batch.
type VideoOutcome struct {
	Ref    youtube.VideoRef
	Result *Result
}

// Failed reports whether this video's run ended in a terminal failure.
func (o VideoOutcome) Failed() bool {
	return o.Result != nil && o.Result.Err != nil
}

// Batch runs the single-video pipeline over a channel's recent
// uploads. Runs are data-independent, so they execute in parallel up
// to Concurrency, paced by Limiter; one video's failure is recorded
// in its outcome and never aborts the rest.
type Batch struct {
	Pipeline *Pipeline
	Lister   ChannelLister

	// Concurrency bounds parallel runs (default 1: sequential).
	Concurrency int
	// Limiter optionally paces run starts to stay friendly to the
	// upstream services.
	Limiter *rate.Limiter
}

// NewBatch returns a sequential batch over the pipeline and lister.
func NewBatch(p *Pipeline, lister ChannelLister) *Batch {
	return &Batch{Pipeline: p, Lister: lister, Concurrency: 1}
}

// Run lists up to max recent uploads and processes each one. The
// returned slice is ordered like the channel's uploads. Run fails only
// when the listing itself fails or the context ends.
func (b *Batch) Run(ctx context.Context, channel string, max int) ([]VideoOutcome, error) {
	refs, err := b.Lister.RecentUploads(ctx, channel, max)
	if err != nil {
		return nil, fmt.Errorf("list channel uploads: %w", err)
	}
	if len(refs) == 0 {
		return nil, nil
	}

	outcomes := make([]VideoOutcome, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	limit := b.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, ref := range refs {
		g.Go(func() error {
			if b.Limiter != nil {
				if err := b.Limiter.Wait(gctx); err != nil {
					return err
				}
			}
			outcomes[i] = VideoOutcome{
				Ref:    ref,
				Result: b.Pipeline.Run(gctx, WatchURL(ref.ID)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
