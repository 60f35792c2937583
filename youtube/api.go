package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"ypsync/retry"
)

// dataAPIRPS is the token-bucket rate applied to Data API calls.
// Conservative per quota: playlists.list and playlistItems.list each
// cost 1 unit against the 10k daily budget.
const dataAPIRPS = 1.0

// pageSize is the playlistItems.list page size (API maximum is 50).
const pageSize = 50

// Client fetches playlist metadata and member lists from the YouTube
// Data API v3. Calls are rate limited and retried with exponential
// backoff; permanent errors (playlist not found) fail immediately.
type Client struct {
	service *youtube.Service
	limiter *rate.Limiter

	// RetryConfig controls backoff for transient API failures.
	RetryConfig retry.Config
}

// NewClient creates a Data API client authenticated with the given key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{
		service:     service,
		limiter:     rate.NewLimiter(rate.Limit(dataAPIRPS), 1),
		RetryConfig: retry.DefaultConfig(),
	}, nil
}

// PlaylistInfo fetches the current metadata for one playlist.
func (c *Client) PlaylistInfo(ctx context.Context, playlistID string) (*Playlist, error) {
	var playlist *Playlist

	err := retry.Do(ctx, c.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		call := c.service.Playlists.List([]string{"snippet"}).
			Id(playlistID).
			Context(ctx)

		resp, err := call.Do()
		if err != nil {
			if ctx.Err() != nil {
				return ErrNetworkTimeout
			}
			return err
		}

		if len(resp.Items) == 0 {
			return retry.Permanent(ErrPlaylistNotFound)
		}

		playlist = &Playlist{ID: playlistID}
		if resp.Items[0].Snippet != nil {
			playlist.Title = resp.Items[0].Snippet.Title
		}
		return nil
	})

	if err != nil {
		return nil, &SourceError{Op: "playlist_info", PlaylistID: playlistID, Err: err}
	}

	return playlist, nil
}

// PlaylistVideos fetches the full ordered member list of a playlist,
// paginating 50 items at a time. The returned slice preserves playlist
// order across pages.
func (c *Client) PlaylistVideos(ctx context.Context, playlistID string) ([]Video, error) {
	var videos []Video

	pageToken := ""
	for {
		err := retry.Do(ctx, c.RetryConfig, apiErrorClassifier, func(ctx context.Context) error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}

			call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(pageSize).
				PageToken(pageToken).
				Context(ctx)

			resp, err := call.Do()
			if err != nil {
				if ctx.Err() != nil {
					return ErrNetworkTimeout
				}
				return err
			}

			for _, item := range resp.Items {
				video := Video{ID: item.ContentDetails.VideoId}
				if item.Snippet != nil {
					video.Title = item.Snippet.Title
				}
				videos = append(videos, video)
			}

			pageToken = resp.NextPageToken
			return nil
		})

		if err != nil {
			return nil, &SourceError{Op: "playlist_videos", PlaylistID: playlistID, Err: err}
		}

		if pageToken == "" {
			break
		}
	}

	log.Printf("youtube: playlist %s has %d videos upstream", playlistID, len(videos))
	return videos, nil
}

// apiErrorClassifier determines if a Data API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrPlaylistNotFound) {
		return false
	}

	// Quota and rate limit errors back off and retry
	if strings.Contains(err.Error(), "quotaExceeded") {
		return true
	}
	if strings.Contains(err.Error(), "rateLimitExceeded") {
		return true
	}

	// Context errors and Permanent-marked errors are final, everything
	// else is retried.
	return retry.IsRetryable(err)
}
