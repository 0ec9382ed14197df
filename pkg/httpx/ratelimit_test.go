package httpx_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/credmarket/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(t *testing.T, h http.Handler, target, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestFormFieldKeyExtractor(t *testing.T) {
	extractor := httpx.FormFieldKeyExtractor("email")

	t.Run("query string", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?email=alice@acme.com", nil)
		require.Equal(t, "alice@acme.com", extractor(req))
	})

	t.Run("POST form is case folded", func(t *testing.T) {
		form := url.Values{"email": {" Bob@Acme.com "}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		require.Equal(t, "bob@acme.com", extractor(req))
	})

	t.Run("missing field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		require.Empty(t, extractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	extractor := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor,
		httpx.FormFieldKeyExtractor("email"),
	)

	req := httptest.NewRequest(http.MethodGet, "/?email=alice@acme.com", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1:alice@acme.com", extractor(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1", extractor(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 3, Window: time.Minute, Burst: 3,
		}, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			rec := hit(t, h, "/", "192.168.1.1:12345")
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}

		rec := hit(t, h, "/", "192.168.1.1:12345")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
		})(okHandler)

		require.Equal(t, http.StatusOK, hit(t, h, "/", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusTooManyRequests, hit(t, h, "/", "192.168.1.1:1").Code)
		require.Equal(t, http.StatusOK, hit(t, h, "/", "192.168.1.2:1").Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
		}, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, hit(t, h, "/", "192.168.1.1:1").Code)
		}
	})
}

func TestRateLimitByIPAndFormField(t *testing.T) {
	h := httpx.RateLimitByIPAndFormField(httpx.RateLimitConfig{
		RequestsPerWindow: 2, Window: time.Minute, Burst: 2,
	}, "email")(okHandler)

	for range 2 {
		require.Equal(t, http.StatusOK, hit(t, h, "/?email=alice@acme.com", "192.168.1.1:1").Code)
	}
	require.Equal(t, http.StatusTooManyRequests, hit(t, h, "/?email=alice@acme.com", "192.168.1.1:1").Code)
	require.Equal(t, http.StatusOK, hit(t, h, "/?email=bob@acme.com", "192.168.1.1:1").Code)
}

func TestRateLimitByUser(t *testing.T) {
	h := httpx.RateLimitByUser(httpx.RateLimitConfig{
		RequestsPerWindow: 1, Window: time.Minute, Burst: 1,
	})(okHandler)

	req := func(user string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:1"
		r = r.WithContext(httpx.ContextWithClaims(r.Context(), claimsFor(user, false)))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	require.Equal(t, http.StatusOK, req("u1").Code)
	require.Equal(t, http.StatusTooManyRequests, req("u1").Code)
	require.Equal(t, http.StatusOK, req("u2").Code)
}

func TestRateLimitProfiles(t *testing.T) {
	for name, config := range map[string]httpx.RateLimitConfig{
		"strict":   httpx.StrictLimit,
		"moderate": httpx.ModerateLimit,
		"lenient":  httpx.LenientLimit,
		"public":   httpx.PublicLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, config.RequestsPerWindow)
			require.Positive(t, config.Window)
			require.Positive(t, config.Burst)
		})
	}

	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("no env uses defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "200")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_BURST", "250")

		require.Equal(t, httpx.RateLimitConfig{
			RequestsPerWindow: 200, Window: 30 * time.Second, Burst: 250,
		}, httpx.ParseRateLimitFromEnv("TEST", def))
	})

	t.Run("invalid and zero values use defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "invalid")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "-10")
		t.Setenv("RATELIMIT_TEST_BURST", "0")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST", def))
	})
}

// Many distinct keys exercise the per-key map.
func BenchmarkRateLimitManyIPs(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{
		RequestsPerWindow: 1000000, Window: time.Minute, Burst: 1000,
	})(okHandler)

	for i := 0; b.Loop(); i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = fmt.Sprintf("192.168.%d.%d:12345", i%255, (i/255)%255)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
}
