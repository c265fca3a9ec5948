// Package analyser is the HTTP adapter for the external song-structure
// analysis service.
package analyser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

// The analyser sits behind a tunnel that serves an interstitial warning page
// unless this header is present. Any value works.
const (
	bypassHeader      = "ngrok-skip-browser-warning"
	bypassHeaderValue = "69420"
)

// Client is an HTTP client for the analysis service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.AnalysisProvider = (*Client)(nil)

// NewClient constructs an analyser client. Analysis of an uncached track can
// take a while server-side, so nil falls back to a client with a generous
// timeout rather than http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// analyseResponse mirrors the analyser payload. Result is a pointer so a
// missing body can be told apart from an empty one.
type analyseResponse struct {
	VideoID string `json:"video_id"`
	Cached  bool   `json:"cached"`
	Result  *struct {
		BPM      float64             `json:"bpm"`
		Segments []domain.RawSegment `json:"segments"`
	} `json:"result"`
}

// AnalyseTrack fetches the structural analysis for the given fuzzy search
// string. The service is treated as a plain unauthenticated fetch; any
// failure or malformed payload surfaces as *ports.UpstreamError.
func (c *Client) AnalyseTrack(ctx context.Context, search string) (domain.Analysis, error) {
	endpoint := fmt.Sprintf("%s/analyse?search=%s", c.baseURL, url.QueryEscape(search))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Analysis{}, &ports.UpstreamError{Service: "analyser", Err: err}
	}
	req.Header.Set(bypassHeader, bypassHeaderValue)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Analysis{}, &ports.UpstreamError{Service: "analyser", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Analysis{}, &ports.UpstreamError{
			Service: "analyser",
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	var body analyseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Analysis{}, &ports.UpstreamError{Service: "analyser", Err: err}
	}

	// Schema validation at the boundary: never propagate missing fields
	// deeper into the system.
	if body.Result == nil {
		return domain.Analysis{}, &ports.UpstreamError{
			Service: "analyser",
			Err:     errors.New("payload missing result"),
		}
	}
	if body.Result.Segments == nil {
		return domain.Analysis{}, &ports.UpstreamError{
			Service: "analyser",
			Err:     errors.New("payload missing segments"),
		}
	}

	return domain.Analysis{
		VideoID:  body.VideoID,
		Cached:   body.Cached,
		BPM:      body.Result.BPM,
		Segments: body.Result.Segments,
	}, nil
}
