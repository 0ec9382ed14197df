package http

import (
	"net/http"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
)

// SessionCookie controls the cookie that mirrors the session token for
// browser clients. API clients can ignore it and send the bearer token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (c SessionCookie) set(w http.ResponseWriter, tok service.IssuedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.ExpiresAt(),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
