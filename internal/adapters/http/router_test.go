package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRouter(t *testing.T, limits RateLimits) (http.Handler, *authFixture) {
	t.Helper()
	f := newAuthFixture(t)
	limiter := NewRateLimiter(newMemRateLimitStore())
	router := NewRouter(f.handler, limiter, limits, []string{"*"})
	return router, f
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	router, f := newTestRouter(t, DefaultRateLimits())
	token, err := f.issuer.IssueAccessToken(f.account)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("logout %d: expected 200, got %d: %s", i+1, rec.Code, rec.Body.String())
		}
	}

	if revoked, _ := f.revoked.IsRevoked(context.Background(), token); !revoked {
		t.Fatalf("token should be revoked after logout")
	}
}

// Token extraction on logout is best effort: a request with no bearer
// token has nothing to revoke and still gets a 200.
func TestLogoutWithoutTokenSucceeds(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, DefaultRateLimits())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthIsExemptFromRateLimits(t *testing.T) {
	t.Parallel()

	// A zero-request budget blocks every limited route immediately.
	limits := RateLimits{
		API:    RateLimit{Limit: 0, Window: time.Minute},
		Auth:   RateLimit{Limit: 0, Window: time.Minute},
		Search: RateLimit{Limit: 0, Window: time.Minute},
		Upload: RateLimit{Limit: 0, Window: time.Minute},
	}
	router, _ := newTestRouter(t, limits)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health should bypass limits, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/projects/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("limited route should 429, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, DefaultRateLimits())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS headers on preflight")
	}
}
