package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/requestctx"
)

// Auth resolves the bearer token into an *auth.Actor. Requests without a
// valid token pass through anonymous; RequireActor rejects them later.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				slog.Debug("token rejected", "err", err, "requestId", GetRequestID(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			actor := auth.ActorFromClaims(claims)
			if actor == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// bearerToken reads the Authorization header, falling back to the
// access_token query parameter for EventSource clients, which cannot set headers.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return ""
		}
		return parts[1]
	}
	if r.Method == http.MethodGet {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

func WithActor(ctx context.Context, actor *auth.Actor) context.Context {
	return requestctx.WithActor(ctx, actor)
}

// GetActor returns the request's actor, or nil when anonymous.
func GetActor(ctx context.Context) *auth.Actor {
	return requestctx.Actor(ctx)
}
