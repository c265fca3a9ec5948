// Package spotify provides the catalog adapter: a bearer-token HTTP client
// for track metadata and search, plus a per-owner client cache that shields
// the rest of the system from repeated credential exchange.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

const defaultBaseURL = "https://api.spotify.com/v1"

// Client is an HTTP client for the Spotify Web API, carrying one owner's
// bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.CatalogClient = (*Client)(nil)

// NewClient constructs a catalog client. httpClient is expected to inject
// the bearer token (see ClientCache); nil falls back to the default client.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetTrack retrieves a track by id and maps it to domain.Track.
func (c *Client) GetTrack(ctx context.Context, trackID string) (domain.Track, error) {
	endpoint := fmt.Sprintf("%s/tracks/%s", c.baseURL, url.PathEscape(trackID))

	var tr spotifyTrack
	if err := c.getJSON(ctx, endpoint, &tr); err != nil {
		return domain.Track{}, err
	}

	return mapTrackToDomain(tr), nil
}

// SearchTracks runs a free-text track search against the catalog.
func (c *Client) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Track{}, nil
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}
	q := searchURL.Query()
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(limit))
	searchURL.RawQuery = q.Encode()

	var body struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := c.getJSON(ctx, searchURL.String(), &body); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(body.Tracks.Items))
	for _, item := range body.Tracks.Items {
		tracks = append(tracks, mapTrackToDomain(item))
	}
	return tracks, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Surfaced untouched so callers can evict the cached credential.
		return fmt.Errorf("spotify adapter: %w", ports.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return &ports.UpstreamError{
			Service: "spotify",
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ports.UpstreamError{Service: "spotify", Err: err}
	}
	return nil
}
