// Package youtube provides video identification, metadata retrieval, and
// channel upload listing backed by the YouTube Data API v3.
package youtube

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for YouTube operations.
var (
	ErrInvalidURL      = errors.New("youtube: no video identifier in input")
	ErrVideoNotFound   = errors.New("youtube: video not found")
	ErrChannelNotFound = errors.New("youtube: channel not found")
	ErrMissingAPIKey   = errors.New("youtube: api key required")
)

// ServiceError wraps a failed Data API call that is not a simple
// not-found condition (quota exhaustion, network failure, bad auth).
type ServiceError struct {
	// Op is the failed operation ("videos.list", "playlistItems.list").
	Op string
	// Code is the HTTP status code, 0 if the call never reached the API.
	Code int
	// Err is the underlying error.
	Err error
}

func (e *ServiceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("youtube: %s failed with status %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("youtube: %s failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// VideoDetails holds the metadata rendered into a report.
type VideoDetails struct {
	// ID is the 11-character YouTube video ID.
	ID string
	// Title is the video title.
	Title string
	// ChannelTitle is the display name of the uploading channel.
	ChannelTitle string
	// PublishedAt is the publication timestamp in UTC.
	PublishedAt time.Time
	// ViewCount, LikeCount, and CommentCount are the public counters.
	// A counter the channel has hidden reports as zero.
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	// Description is the full video description.
	Description string
	// ThumbnailURL points at the best available thumbnail.
	ThumbnailURL string
}

// VideoRef identifies one upload of a channel.
type VideoRef struct {
	// ID is the 11-character video ID.
	ID string
	// Title is the video title as listed in the uploads playlist.
	Title string
	// PublishedAt is when the video was published.
	PublishedAt time.Time
}
