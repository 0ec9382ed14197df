// Package revocation tracks logged-out session tokens by jti until the token
// would have expired anyway.
package revocation

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyJTI = errors.New("revocation: empty jti")

// List is a denylist of token ids.
type List interface {
	// Revoke denies jti until expiresAt. Tokens already past expiry are
	// ignored since verification rejects them regardless.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Close() error
}
