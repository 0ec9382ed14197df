package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose separates the kinds of token the service mints so one can never be
// replayed as another.
type Purpose string

const (
	// PurposeSession authenticates a logged-in user.
	PurposeSession Purpose = "session"
	// PurposePending carries a freshly registered user from signup to OTP
	// verification.
	PurposePending Purpose = "pending"
	// PurposeWaitlist lets a verified but waitlisted user view their holding
	// page without being logged in.
	PurposeWaitlist Purpose = "waitlist"
)

// Default lifetimes, overridable per deployment.
const (
	DefaultSessionTTL = 12 * time.Hour
	DefaultPendingTTL = 30 * time.Minute
)

// Claims are the JWT claims for every token the service issues.
type Claims struct {
	jwt.RegisteredClaims

	Purpose Purpose `json:"pur"`

	// Email of the subject at issue time, informational only.
	Email string `json:"email,omitempty"`

	// Staff marks operator sessions that may reach the admin routes.
	Staff bool `json:"staff,omitempty"`

	// Authentication Methods Reference, "pwd" and optionally "otp".
	AMR []string `json:"amr,omitempty"`
}

// NewClaims builds claims for subject with a fresh jti.
func NewClaims(purpose Purpose, subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Purpose: purpose,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidatePurpose checks the token was minted for the expected use.
func (c *Claims) ValidatePurpose(expected Purpose) error {
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// Remaining reports how long until the token expires, zero when it already
// has or carries no exp.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(c.ExpiresAt.Sub(now), 0)
}
