package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/platform/metrics"
)

func TestLoggerRecordsStatus(t *testing.T) {
	collector := metrics.New()
	handler := Logger(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	snap := collector.Snapshot()
	if snap["requestsTotal"] != uint64(1) || snap["forbiddenTotal"] != uint64(1) {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
}

func TestRecovererAnswers500(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestLoggerNamesActorResolvedByAuth(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u42", Role: string(auth.RoleStandard)}, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := Logger(metrics.New())(Auth(secret)(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(logs.String(), `"actor":"u42"`) {
		t.Fatalf("access log should name the actor, got %s", logs.String())
	}
}
