package youtube

import (
	"context"
	"strings"
	"time"
)

// maxUploadsPageSize is the Data API cap for playlistItems.list.
const maxUploadsPageSize = 50

// RecentUploads lists the most recent uploads of a channel, newest
// first, up to max videos. The channel may be given as a channel ID
// ("UC..."), a handle ("@name"), or a URL containing either form.
func (c *Client) RecentUploads(ctx context.Context, channel string, max int) ([]VideoRef, error) {
	if max <= 0 {
		max = maxUploadsPageSize
	}

	uploadsID, err := c.uploadsPlaylistID(ctx, channel)
	if err != nil {
		return nil, err
	}

	var refs []VideoRef
	pageToken := ""
	for len(refs) < max {
		pageSize := int64(max - len(refs))
		if pageSize > maxUploadsPageSize {
			pageSize = maxUploadsPageSize
		}

		call := c.service.PlaylistItems.
			List([]string{"snippet", "contentDetails"}).
			PlaylistId(uploadsID).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, apiError("playlistItems.list", err)
		}

		for _, item := range resp.Items {
			ref := VideoRef{ID: item.ContentDetails.VideoId}
			if item.Snippet != nil {
				ref.Title = item.Snippet.Title
				if t, perr := time.Parse(time.RFC3339, item.Snippet.PublishedAt); perr == nil {
					ref.PublishedAt = t.UTC()
				}
			}
			refs = append(refs, ref)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return refs, nil
}

// uploadsPlaylistID resolves a channel reference to its uploads
// playlist ID via channels.list.
func (c *Client) uploadsPlaylistID(ctx context.Context, channel string) (string, error) {
	call := c.service.Channels.
		List([]string{"contentDetails"}).
		Context(ctx)

	switch ref := normalizeChannelRef(channel); {
	case strings.HasPrefix(ref, "@"):
		call = call.ForHandle(ref)
	case strings.HasPrefix(ref, "UC"):
		call = call.Id(ref)
	default:
		return "", ErrChannelNotFound
	}

	resp, err := call.Do()
	if err != nil {
		return "", apiError("channels.list", err)
	}

	if len(resp.Items) == 0 {
		return "", ErrChannelNotFound
	}

	cd := resp.Items[0].ContentDetails
	if cd == nil || cd.RelatedPlaylists == nil || cd.RelatedPlaylists.Uploads == "" {
		return "", ErrChannelNotFound
	}
	return cd.RelatedPlaylists.Uploads, nil
}

// normalizeChannelRef strips URL scaffolding around a channel ID or
// handle so both bare and full-URL forms resolve.
func normalizeChannelRef(channel string) string {
	ref := strings.TrimSpace(channel)
	ref = strings.TrimSuffix(ref, "/")

	if i := strings.Index(ref, "youtube.com/channel/"); i != -1 {
		ref = ref[i+len("youtube.com/channel/"):]
	} else if i := strings.Index(ref, "youtube.com/@"); i != -1 {
		ref = ref[i+len("youtube.com/"):]
	}

	if i := strings.IndexAny(ref, "?&"); i != -1 {
		ref = ref[:i]
	}
	return ref
}
