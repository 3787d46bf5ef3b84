package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ytbrief/audio"
	"ytbrief/youtube"
)

type fakeLister struct {
	refs []youtube.VideoRef
	err  error
}

func (f *fakeLister) RecentUploads(_ context.Context, _ string, max int) ([]youtube.VideoRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	if max > 0 && max < len(f.refs) {
		return f.refs[:max], nil
	}
	return f.refs, nil
}

func TestBatchRecordsPartialFailure(t *testing.T) {
	p, _, _, _, _, _ := testPipeline(t)
	p.Acquirer = &fakeAcquirer{
		make:    func() *audio.Artifact { return tempArtifact(t) },
		err:     &audio.DownloadError{Reason: audio.ReasonPrivate, Err: errors.New("private")},
		failFor: "bbbbbbbbbbb",
	}

	lister := &fakeLister{refs: []youtube.VideoRef{
		{ID: "aaaaaaaaaaa", Title: "first"},
		{ID: "bbbbbbbbbbb", Title: "second"},
		{ID: "ccccccccccc", Title: "third"},
	}}

	b := NewBatch(p, lister)
	outcomes, err := b.Run(context.Background(), "@somechannel", 0)
	if err != nil {
		t.Fatalf("Batch.Run: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	if outcomes[0].Failed() || outcomes[2].Failed() {
		t.Error("healthy videos recorded as failed")
	}
	if !outcomes[1].Failed() {
		t.Fatal("failing video not recorded as failed")
	}

	var serr *StageError
	if !errors.As(outcomes[1].Result.Err, &serr) || serr.Stage != StageAcquire {
		t.Errorf("failed outcome error = %v, want StageError at audio-acquire", outcomes[1].Result.Err)
	}
}

func TestBatchParallelRuns(t *testing.T) {
	p, meta, _, _, _, _ := testPipeline(t)

	var refs []youtube.VideoRef
	ids := []string{"aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc", "ddddddddddd", "eeeeeeeeeee"}
	for _, id := range ids {
		refs = append(refs, youtube.VideoRef{ID: id})
	}

	b := NewBatch(p, &fakeLister{refs: refs})
	b.Concurrency = 3

	outcomes, err := b.Run(context.Background(), "@chan", 0)
	if err != nil {
		t.Fatalf("Batch.Run: %v", err)
	}
	if len(outcomes) != len(ids) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(ids))
	}
	for i, o := range outcomes {
		if o.Ref.ID != ids[i] {
			t.Errorf("outcome %d out of order: %q", i, o.Ref.ID)
		}
		if o.Failed() {
			t.Errorf("outcome %d failed: %v", i, o.Result.Err)
		}
	}
	if meta.calls != len(ids) {
		t.Errorf("metadata fetched %d times, want %d", meta.calls, len(ids))
	}
}

func TestBatchListingFailure(t *testing.T) {
	p, meta, _, _, _, _ := testPipeline(t)
	cause := errors.New("quota exceeded")

	b := NewBatch(p, &fakeLister{err: cause})
	_, err := b.Run(context.Background(), "@chan", 0)
	if !errors.Is(err, cause) {
		t.Fatalf("Batch.Run error = %v, want listing cause", err)
	}
	if meta.calls != 0 {
		t.Error("pipeline ran despite listing failure")
	}
}

func TestWatchURL(t *testing.T) {
	url := WatchURL("dQw4w9WgXcQ")
	if !strings.Contains(url, "v=dQw4w9WgXcQ") {
		t.Errorf("WatchURL = %q", url)
	}
	if id, err := youtube.ExtractVideoID(url); err != nil || id != "dQw4w9WgXcQ" {
		t.Errorf("round trip failed: %q, %v", id, err)
	}
}
