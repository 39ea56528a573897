package middleware

import (
	"net/http"

	"hrconsole/internal/transport/http/api"
)

func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r.Context()) == nil {
			api.Unauthorized(w, GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireElevated gates routes that only elevated actors may use at all,
// independent of record ownership.
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if actor == nil {
			api.Unauthorized(w, GetRequestID(r.Context()))
			return
		}
		if !actor.Elevated() {
			api.Forbidden(w, "elevated role required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
