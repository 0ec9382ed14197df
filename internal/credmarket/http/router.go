package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/metrics"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/revocation"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/service"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"

	_ "github.com/aussiebroadwan/credmarket/api/credmarket" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultSessionCookie is the cookie browsers carry the session token in.
const DefaultSessionCookie = "credmarket_session"

// swaggerCSP lets the swagger UI run its inline bootstrap script.
const swaggerCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookie       SessionCookie

	store       store.Store
	revocations revocation.List

	CompanyService *service.CompanyService
	UserService    *service.UserService
	SignupService  *service.SignupService
	SessionService *service.SessionService
	MFAService     *service.MFAService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	revocations revocation.List,
	cookie SessionCookie,
	logger *slog.Logger,
) *Router {
	if cookie.Name == "" {
		cookie.Name = DefaultSessionCookie
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookie:       cookie,
		store:        st,
		revocations:  revocations,
	}

	// metrics must sit directly on the mux to read the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.SecurityHeaders(""),
		metrics.HTTPMiddleware,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOnboarding()
	r.registerProfile()
	r.registerMFA()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpx.Chain(httpSwagger.Handler(),
		relaxCSP(swaggerCSP),
		httpx.RateLimitByIP(httpx.PublicLimit),
	))
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CredMarket Onboarding API
//	@version		0.1.0
//	@description	Company-verified signup for CredMarket: email OTP verification, company waitlisting and approval, and the operator console.
//	@description
//	@description				Requests are form encoded. Responses are JSON; where a browser flow would redirect, the body carries a "next" field instead.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/credmarket
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session (or waitlist) token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.SessionService, r.cookie.Name)
}

func (r *Router) registerOnboarding() {
	h := &OnboardingHandler{Signup: r.SignupService, Cookie: r.cookie}

	// Public, unauthenticated steps are rate limited by IP; verify and login
	// also by the token or email being tried.
	r.Mux.Handle("POST /v1/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/signup/resend",
		httpx.Chain(http.HandlerFunc(h.HandleResend),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/verify",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "pending_token"),
		),
	)
	r.Mux.Handle("GET /v1/waitlist",
		httpx.Chain(http.HandlerFunc(h.HandleWaitlist),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{Users: r.UserService}

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/me",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.authn(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFA: r.MFAService}

	// TOTP codes are six digits, so everything here is strict.
	r.Mux.Handle("POST /v1/mfa/totp/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			r.authn(),
			httpx.RequireStaff,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/mfa/totp/confirm",
		httpx.Chain(http.HandlerFunc(h.HandleConfirm),
			r.authn(),
			httpx.RequireStaff,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/mfa/totp",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			r.authn(),
			httpx.RequireStaff,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{Companies: r.CompanyService, Users: r.UserService}

	staff := func(fn http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RequireStaff,
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/admin/dashboard", staff(h.HandleDashboard, httpx.LenientLimit))

	r.Mux.Handle("GET /v1/admin/companies", staff(h.HandleListCompanies, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/admin/companies", staff(h.HandleAddCompany, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/admin/companies/{id}", staff(h.HandleGetCompany, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/admin/companies/{id}", staff(h.HandleDeleteCompany, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/admin/companies/{id}/approve", staff(h.HandleApproveCompany, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/admin/companies/{id}/reject", staff(h.HandleRejectCompany, httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/admin/companies/{id}/waitlist", staff(h.HandleWaitlistCompany, httpx.ModerateLimit))

	r.Mux.Handle("GET /v1/admin/users", staff(h.HandleListUsers, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/admin/users/{id}/status", staff(h.HandleSetUserStatus, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.revocations),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(metrics.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func relaxCSP(csp string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", csp)
			next.ServeHTTP(w, r)
		})
	}
}
