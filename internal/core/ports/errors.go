package ports

import (
	"errors"
	"fmt"
)

// ErrAuth indicates a credential exchange failed or produced unusable data.
var ErrAuth = errors.New("authentication failed")

// AuthError carries the owner whose credential exchange failed.
type AuthError struct {
	OwnerID string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no usable credential for user %s", e.OwnerID)
	}
	return fmt.Sprintf("credential exchange for user %s failed: %v", e.OwnerID, e.Err)
}

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

func (e *AuthError) Unwrap() error { return e.Err }

// ErrUnauthorized indicates the catalog rejected a previously exchanged
// credential. Callers react by invalidating the owner's cache entry.
var ErrUnauthorized = errors.New("credential rejected")

// ErrUpstream indicates an external service was unreachable or returned a
// malformed payload.
var ErrUpstream = errors.New("upstream failure")

// UpstreamError names the external service that failed.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %v", e.Service, e.Err)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }
