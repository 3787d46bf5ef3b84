package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// Client fetches video metadata from the YouTube Data API v3.
//
// Each fetch is a single external call translated into ErrVideoNotFound
// or a *ServiceError. The client never retries internally; retry policy
// belongs to the caller.
type Client struct {
	service *yt.Service
}

// NewClient creates a Data API client using the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	service, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// FetchDetails retrieves snippet and statistics for a single video.
// It returns ErrVideoNotFound for deleted or private videos and a
// *ServiceError for quota, auth, and network failures.
func (c *Client) FetchDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	resp, err := c.service.Videos.
		List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apiError("videos.list", err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	return parseDetails(resp.Items[0]), nil
}

// parseDetails maps an API video resource onto VideoDetails.
func parseDetails(v *yt.Video) *VideoDetails {
	d := &VideoDetails{ID: v.Id}

	if s := v.Snippet; s != nil {
		d.Title = s.Title
		d.ChannelTitle = s.ChannelTitle
		d.Description = s.Description
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			d.PublishedAt = t.UTC()
		}
		d.ThumbnailURL = bestThumbnail(s.Thumbnails)
	}

	if st := v.Statistics; st != nil {
		d.ViewCount = int64(st.ViewCount)
		d.LikeCount = int64(st.LikeCount)
		d.CommentCount = int64(st.CommentCount)
	}

	return d
}

// bestThumbnail picks the highest-resolution thumbnail available.
func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*yt.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}

// apiError translates a Data API failure into the package error model.
func apiError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == 404 {
			return ErrVideoNotFound
		}
		return &ServiceError{Op: op, Code: gerr.Code, Err: err}
	}
	return &ServiceError{Op: op, Err: err}
}
