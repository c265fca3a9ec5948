package spotify

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/olifog/musejump/backend/internal/core/ports"
)

// DefaultSafetyMargin is the minimum remaining token lifetime below which a
// cached credential is considered dead and evicted.
const DefaultSafetyMargin = time.Second

// ClientCache hands out per-owner catalog clients, caching each owner's
// exchanged credential until its remaining lifetime drops to the safety
// margin. It is safe for concurrent use; concurrent Gets for the same owner
// collapse into a single upstream exchange.
type ClientCache struct {
	exchanger ports.TokenExchanger
	baseURL   string
	margin    time.Duration
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// cacheEntry serializes exchanges for one owner. The entry mutex is held for
// the duration of an exchange, so a second Get for the same owner waits and
// then reuses the fresh result instead of exchanging again.
type cacheEntry struct {
	mu     sync.Mutex
	client *Client
	expiry time.Time
	ready  bool
}

var _ ports.CatalogProvider = (*ClientCache)(nil)

// NewClientCache constructs the cache. A non-positive margin falls back to
// DefaultSafetyMargin.
func NewClientCache(exchanger ports.TokenExchanger, baseURL string, margin time.Duration) *ClientCache {
	if margin <= 0 {
		margin = DefaultSafetyMargin
	}
	return &ClientCache{
		exchanger: exchanger,
		baseURL:   baseURL,
		margin:    margin,
		now:       time.Now,
		entries:   make(map[string]*cacheEntry),
	}
}

// Get returns a live catalog client for ownerID. A cached client is returned
// without any external call while its token's remaining lifetime is strictly
// above the safety margin; otherwise the stale entry is evicted and a fresh
// exchange is performed.
func (c *ClientCache) Get(ctx context.Context, ownerID string) (ports.CatalogClient, error) {
	entry := c.entry(ownerID)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.ready && entry.expiry.Sub(c.now()) > c.margin {
		return entry.client, nil
	}

	// Stale or absent: evict before exchanging so a failed exchange never
	// leaves a dead credential behind.
	entry.ready = false
	entry.client = nil

	cred, err := c.exchanger.ExchangeToken(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if cred.Token == "" {
		return nil, &ports.AuthError{OwnerID: ownerID}
	}

	client := c.newClient(cred)

	// A credential without a reported expiry is usable for this call but has
	// no judgeable lifetime, so it is never reused.
	if !cred.ExpiresAt.IsZero() {
		entry.client = client
		entry.expiry = cred.ExpiresAt
		entry.ready = true
	} else {
		log.Printf("WARN spotify cache: credential for %s has no expiry, not caching", ownerID)
	}

	return client, nil
}

// Invalidate forces eviction of ownerID's cached credential. Callers use it
// after the catalog rejected the handle's token, so the next Get performs a
// fresh exchange instead of serving the dead credential again.
func (c *ClientCache) Invalidate(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ownerID)
}

func (c *ClientCache) entry(ownerID string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[ownerID]
	if !ok {
		entry = &cacheEntry{}
		c.entries[ownerID] = entry
	}
	return entry
}

func (c *ClientCache) newClient(cred ports.Credential) *Client {
	token := &oauth2.Token{
		AccessToken: cred.Token,
		TokenType:   "Bearer",
		Expiry:      cred.ExpiresAt,
	}
	// Background context: the HTTP client outlives the request that
	// triggered the exchange.
	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(token))
	return NewClient(httpClient, c.baseURL)
}
