package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/revocation"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/store"
	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database and, when it is remote, the revocation list.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	credsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	credsdk.HealthResponse	"a dependency is unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	revocations revocation.List,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := &credsdk.HealthChecks{Database: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		// The in-memory list has nothing to ping.
		if p, ok := revocations.(pinger); ok {
			checks.Revocation = "ok"
			if err := p.Ping(ctx); err != nil {
				checks.Revocation = "error: " + err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		httpx.WriteJSON(w, code, credsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
