package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"learnsphere/config"

	"github.com/go-resty/resty/v2"
)

const youtubePlaylistItemsURL = "https://www.googleapis.com/youtube/v3/playlistItems"

// PlaylistVideo is one item of a YouTube playlist, in playlist order.
type PlaylistVideo struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	Position     int    `json:"position"`
}

// FetchPlaylistVideos loads a playlist's items from the YouTube Data API.
// Used by teachers importing a playlist as a course's video list; the
// progress engine itself only ever reads the stored Video rows.
func FetchPlaylistVideos(playlistID string) ([]PlaylistVideo, error) {
	if config.AppConfig.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is not configured")
	}

	client := resty.New()
	videos := []PlaylistVideo{}
	pageToken := ""

	for {
		resp, err := client.R().
			SetQueryParams(map[string]string{
				"part":       "snippet",
				"maxResults": "50",
				"playlistId": playlistID,
				"pageToken":  pageToken,
				"key":        config.AppConfig.YouTubeAPIKey,
			}).
			Get(youtubePlaylistItemsURL)
		if err != nil {
			log.Printf("Failed to fetch playlist %s: %v", playlistID, err)
			return nil, err
		}
		if resp.StatusCode() != 200 {
			log.Printf("YouTube API error for playlist %s: %s", playlistID, resp.String())
			return nil, fmt.Errorf("youtube api responded with status %d", resp.StatusCode())
		}

		var page struct {
			NextPageToken string `json:"nextPageToken"`
			Items         []struct {
				Snippet struct {
					Title      string `json:"title"`
					Position   int    `json:"position"`
					Thumbnails struct {
						Medium struct {
							URL string `json:"url"`
						} `json:"medium"`
					} `json:"thumbnails"`
					ResourceID struct {
						VideoID string `json:"videoId"`
					} `json:"resourceId"`
				} `json:"snippet"`
			} `json:"items"`
		}
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			log.Printf("Failed to parse YouTube response: %v", err)
			return nil, err
		}

		for _, item := range page.Items {
			videos = append(videos, PlaylistVideo{
				VideoID:      item.Snippet.ResourceID.VideoID,
				Title:        item.Snippet.Title,
				ThumbnailURL: item.Snippet.Thumbnails.Medium.URL,
				Position:     item.Snippet.Position,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return videos, nil
}
