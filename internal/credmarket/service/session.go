package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/domain"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/revocation"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// DefaultWaitlistTTL bounds how long the waitlist holding page stays
// reachable after verification.
const DefaultWaitlistTTL = 24 * time.Hour

// TokenSigner is the subset of jwtx.HMAC the session service needs.
type TokenSigner interface {
	jwtx.Signer
	jwtx.Verifier
	Issuer() string
}

// SessionService mints and checks the three kinds of token: pending (signup
// to verify), waitlist (holding page) and session (logged in). Logged-out
// session ids and spent pending tokens go on the revocation list until they
// expire.
//
// When Store is set, every session check reloads the account so a suspended,
// rejected or deactivated user loses access at once.
type SessionService struct {
	Tokens      TokenSigner
	Revocations revocation.List
	Store       store.Store
	SessionTTL  time.Duration
	PendingTTL  time.Duration
	WaitlistTTL time.Duration
	Clock       Clock
}

// IssuedToken is a signed token plus the claims inside it.
type IssuedToken struct {
	Token  string
	Claims jwtx.Claims
}

func (t IssuedToken) ExpiresAt() time.Time {
	if t.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return t.Claims.ExpiresAt.Time
}

func (s *SessionService) ttl(p jwtx.Purpose) time.Duration {
	switch p {
	case jwtx.PurposeSession:
		if s.SessionTTL > 0 {
			return s.SessionTTL
		}
		return jwtx.DefaultSessionTTL
	case jwtx.PurposePending:
		if s.PendingTTL > 0 {
			return s.PendingTTL
		}
		return jwtx.DefaultPendingTTL
	default:
		if s.WaitlistTTL > 0 {
			return s.WaitlistTTL
		}
		return DefaultWaitlistTTL
	}
}

// Issue signs a token of the given purpose for u.
func (s *SessionService) Issue(p jwtx.Purpose, u domain.User, amr ...string) (IssuedToken, error) {
	claims := jwtx.NewClaims(p, u.ID, s.Tokens.Issuer(), s.ttl(p), s.Clock.now())
	claims.Email = u.Email
	if p == jwtx.PurposeSession {
		claims.Staff = u.Staff
		claims.AMR = amr
	}

	tok, err := s.Tokens.Sign(claims)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign %s token: %w", p, err)
	}
	return IssuedToken{Token: tok, Claims: claims}, nil
}

// VerifyPurpose validates a token and checks it was minted for p.
func (s *SessionService) VerifyPurpose(ctx context.Context, token string, p jwtx.Purpose) (jwtx.Claims, error) {
	if token == "" {
		return jwtx.Claims{}, ErrInvalidToken
	}

	claims, err := s.Tokens.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("token rejected", slog.String("purpose", string(p)), slog.Any("error", err))
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err := claims.ValidatePurpose(p); err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if s.Revocations != nil {
		revoked, err := s.Revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return jwtx.Claims{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return jwtx.Claims{}, fmt.Errorf("%w: %s token revoked", ErrInvalidToken, p)
		}
	}
	return claims, nil
}

// Verify validates a session token, consults the revocation list and checks
// the account may still hold a session. Email and staff flags are refreshed
// from the stored user. It satisfies httpx.SessionVerifier.
func (s *SessionService) Verify(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := s.VerifyPurpose(ctx, token, jwtx.PurposeSession)
	if err != nil {
		return jwtx.Claims{}, err
	}
	if s.Store == nil {
		return claims, nil
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		return jwtx.Claims{}, fmt.Errorf("%w: account no longer exists", ErrInvalidToken)
	}
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("load session user: %w", err)
	}
	if err := loginGate(u); err != nil {
		slogx.FromContext(ctx).Warn("session refused for blocked account",
			slog.String("user_id", u.ID),
			slog.String("status", string(u.Status)),
			slog.Bool("active", u.Active))
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims.Email = u.Email
	claims.Staff = u.Staff
	return claims, nil
}

// Revoke denies a token for the rest of its lifetime.
func (s *SessionService) Revoke(ctx context.Context, claims jwtx.Claims) error {
	if s.Revocations == nil {
		return errors.New("no revocation list configured")
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.Revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
