package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeySize is the shortest HS256 key NewHMAC accepts.
const MinKeySize = 16

// HMAC signs and verifies HS256 tokens with a single shared key. The service
// is the only party that reads its own tokens, so there is no public key to
// publish.
type HMAC struct {
	kid    string
	key    []byte
	issuer string

	// Leeway tolerates clock skew on exp/nbf.
	Leeway time.Duration

	// Now is the verification clock, defaults to time.Now.
	Now func() time.Time
}

var (
	_ Signer   = (*HMAC)(nil)
	_ Verifier = (*HMAC)(nil)
)

// NewHMAC returns an HS256 signer/verifier. Tokens it verifies must carry the
// same kid and issuer.
func NewHMAC(kid string, key []byte, issuer string) (*HMAC, error) {
	if len(key) < MinKeySize {
		return nil, ErrWeakKey
	}
	return &HMAC{
		kid:    kid,
		key:    append([]byte(nil), key...),
		issuer: issuer,
		Now:    time.Now,
	}, nil
}

func (h *HMAC) KID() string    { return h.kid }
func (h *HMAC) Issuer() string { return h.issuer }

// Sign serialises and signs claims.
func (h *HMAC) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = h.kid
	return t.SignedString(h.key)
}

// Verify checks signature, kid, issuer, exp and nbf. Purpose is left to the
// caller because one verifier serves every purpose.
func (h *HMAC) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(h.Leeway),
		jwt.WithTimeFunc(h.Now),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != h.kid {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		return h.key, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownKID):
		return ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
