package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/credmarket/pkg/credsdk"
	"github.com/aussiebroadwan/credmarket/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	credsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, credsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}
