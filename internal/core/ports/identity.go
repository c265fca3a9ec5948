package ports

import (
	"context"
	"time"
)

// Credential is a bearer token for the catalog API obtained on behalf of one
// owner. ExpiresAt is zero when the issuer reported no expiry.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// TokenExchanger performs the credential exchange against the identity
// provider. An exchange that yields no usable token fails with *AuthError.
type TokenExchanger interface {
	ExchangeToken(ctx context.Context, ownerID string) (Credential, error)
}
