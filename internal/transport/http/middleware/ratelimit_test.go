package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrconsole/internal/domain/auth"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimitUsesActorKeyBeforeIPFallback(t *testing.T) {
	limited := MutationRateLimit(1, time.Minute)(noContent())
	ctx := WithActor(context.Background(), &auth.Actor{ID: "user-1"})

	first := httptest.NewRequest(http.MethodPost, "/api/v1/absences", nil).WithContext(ctx)
	first.RemoteAddr = "198.51.100.11:2222"
	firstRec := httptest.NewRecorder()
	limited.ServeHTTP(firstRec, first)
	if firstRec.Code != http.StatusNoContent {
		t.Fatalf("expected first request to pass, got %d", firstRec.Code)
	}

	second := httptest.NewRequest(http.MethodPut, "/api/v1/absences/a1", nil).WithContext(ctx)
	second.RemoteAddr = "198.51.100.12:3333"
	secondRec := httptest.NewRecorder()
	limited.ServeHTTP(secondRec, second)
	if secondRec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled by actor key, got %d", secondRec.Code)
	}
	if secondRec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestRateLimitFallsBackToIP(t *testing.T) {
	limited := MutationRateLimit(1, time.Minute)(noContent())

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/e1", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.10, 10.0.0.1")
		req.RemoteAddr = "10.0.0.1:4444"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, rec.Code)
		}
	}
}

func TestRateLimitIgnoresReadsAndResetsWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limited := MutationRateLimit(1, time.Minute, withClock(func() time.Time { return now }))(noContent())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("reads must not be limited, got %d", rec.Code)
		}
	}

	post := func() int {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/events", nil))
		return rec.Code
	}
	if post() != http.StatusNoContent || post() != http.StatusTooManyRequests {
		t.Fatal("expected second write in window to be limited")
	}
	now = now.Add(61 * time.Second)
	if code := post(); code != http.StatusNoContent {
		t.Fatalf("expected new window to admit write, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	limited := MutationRateLimit(0, time.Minute)(noContent())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("disabled limiter rejected request: %d", rec.Code)
		}
	}
}
