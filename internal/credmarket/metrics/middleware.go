package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// unmatchedRoute labels requests the mux did not route, keeping the route
// label bounded.
const unmatchedRoute = "unmatched"

// HTTPMiddleware observes request latency labelled by the ServeMux pattern.
// It must wrap the mux itself: the pattern is only known once the mux has
// routed the request, and r is handed down unchanged so the mux can set it.
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}
		HTTPRequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
