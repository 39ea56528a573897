package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrconsole/internal/domain/auth"
)

func TestAuthMiddlewareSetsActor(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, auth.Claims{UserID: "u1", Role: "superuser"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		actor := GetActor(r.Context())
		if actor == nil {
			t.Fatal("expected actor in context")
		}
		if actor.ID != "u1" || !actor.Elevated() {
			t.Fatalf("unexpected actor: %+v", actor)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("handler not called")
	}
}

func TestAuthMiddlewareQueryTokenForStreams(t *testing.T) {
	secret := "test-secret"
	token, _ := auth.GenerateToken(secret, auth.Claims{UserID: "u2"}, time.Hour)

	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if actor == nil || actor.ID != "u2" || actor.Elevated() {
			t.Fatalf("unexpected actor: %+v", actor)
		}
	}))
	req := httptest.NewRequest(http.MethodGet, "/stream?access_token="+token, nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareMissingOrBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r.Context()) != nil {
			t.Fatal("did not expect actor in context")
		}
	}))

	for _, header := range []string{"", "Bearer nope", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func TestRequireActor(t *testing.T) {
	handler := RequireActor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), &auth.Actor{ID: "u1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRequireElevated(t *testing.T) {
	handler := RequireElevated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), &auth.Actor{ID: "u1", Role: auth.RoleStandard}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), &auth.Actor{ID: "boss", Role: auth.RoleElevated}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
