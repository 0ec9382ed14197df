package jwtx

import "errors"

// Signer mints tokens.
type Signer interface {
	KID() string
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrUnknownKID = errors.New("jwtx: unknown kid")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrWeakKey    = errors.New("jwtx: signing key too short")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrPurpose     = errors.New("jwtx: purpose mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)
