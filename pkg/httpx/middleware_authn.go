package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/credmarket/pkg/jwtx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// SessionVerifier validates a session token, including revocation.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (jwtx.Claims, error)
}

// AuthnMiddleware requires a valid session token, taken from the
// Authorization header or, failing that, from the named cookie.
func AuthnMiddleware(v SessionVerifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := SessionToken(r, cookieName)
			if raw == "" {
				writeBearerError(w, "missing session token")
				return
			}

			claims, err := v.Verify(ctx, raw)
			if err != nil {
				log.Warn("session verify failed", slog.Any("error", err))
				writeBearerError(w, "session verification failed")
				return
			}

			ctx = ContextWithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

// SessionToken prefers the bearer header, then the cookie.
func SessionToken(r *http.Request, cookieName string) string {
	if tok := BearerToken(r); tok != "" {
		return tok
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireStaff rejects callers whose session is not an operator session.
// Must run after AuthnMiddleware.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isStaff(r.Context()) {
			WriteError(w, http.StatusForbidden, "forbidden", "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
