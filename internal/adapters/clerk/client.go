// Package clerk adapts the identity provider's backend API to the token
// exchanger port: given an owner id it fetches that user's Spotify OAuth
// access token.
package clerk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olifog/musejump/backend/internal/core/ports"
)

const defaultBaseURL = "https://api.clerk.com"

// Client is an HTTP client for the identity provider's backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
}

// compile-time interface assertion
var _ ports.TokenExchanger = (*Client)(nil)

// NewClient constructs an identity client authenticated with the backend
// secret key.
func NewClient(httpClient *http.Client, baseURL, secretKey string) *Client {
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
		secretKey:  secretKey,
	}
}

// oauthAccessToken mirrors one element of the provider's token response.
type oauthAccessToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// ExchangeToken fetches the owner's current Spotify access token. A missing
// or empty token is an *ports.AuthError; nothing is retried here.
func (c *Client) ExchangeToken(ctx context.Context, ownerID string) (ports.Credential, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s/oauth_access_tokens/spotify", c.baseURL, url.PathEscape(ownerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.Credential{}, fmt.Errorf("clerk adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Credential{}, &ports.AuthError{OwnerID: ownerID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Credential{}, &ports.AuthError{
			OwnerID: ownerID,
			Err:     fmt.Errorf("token endpoint status %d", resp.StatusCode),
		}
	}

	var tokens []oauthAccessToken
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return ports.Credential{}, &ports.AuthError{OwnerID: ownerID, Err: err}
	}

	if len(tokens) == 0 || tokens[0].Token == "" {
		return ports.Credential{}, &ports.AuthError{OwnerID: ownerID}
	}

	cred := ports.Credential{Token: tokens[0].Token}
	if tokens[0].ExpiresAt > 0 {
		cred.ExpiresAt = time.Unix(tokens[0].ExpiresAt, 0)
	}
	return cred, nil
}
