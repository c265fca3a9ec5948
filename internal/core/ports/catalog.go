package ports

import (
	"context"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

// CatalogClient is a per-owner handle onto the music catalog, carrying that
// owner's bearer token. Handles are produced by a CatalogProvider and must
// not be shared across owners.
type CatalogClient interface {
	// GetTrack fetches catalog metadata for a track by id.
	GetTrack(ctx context.Context, trackID string) (domain.Track, error)

	// SearchTracks runs a free-text track search, returning at most limit
	// results.
	SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error)
}

// CatalogProvider hands out live catalog clients keyed by owner, shielding
// callers from credential exchange and expiry.
type CatalogProvider interface {
	// Get returns a catalog client for ownerID, reusing a cached credential
	// when its remaining lifetime is above the provider's safety margin.
	// It fails with *AuthError when no usable credential can be obtained.
	Get(ctx context.Context, ownerID string) (CatalogClient, error)

	// Invalidate evicts any cached credential for ownerID. Callers use it
	// after a request against the handle itself failed with an authorization
	// error, so the next Get performs a fresh exchange.
	Invalidate(ownerID string)
}
