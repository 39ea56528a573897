package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

// ErrorCase maps a domain error to a response status and code. Message is
// what the console shows; when empty the error text is used.
type ErrorCase struct {
	Target  error
	Status  int
	Code    string
	Message string
}

// WriteError answers a failed service call. Ownership denials name the
// record's creator through lookup; cases are tried in order; anything else
// is logged and reported as a 500.
func WriteError(w http.ResponseWriter, r *http.Request, lookup auth.NameLookup, err error, cases ...ErrorCase) {
	requestID := middleware.GetRequestID(r.Context())

	var denied *auth.DeniedError
	switch {
	case errors.As(err, &denied):
		label := auth.OwnerLabel(r.Context(), lookup, denied.OwnerID)
		api.Forbidden(w, "record belongs to "+label, requestID)
		return
	case errors.Is(err, auth.ErrUnauthenticated):
		api.Unauthorized(w, requestID)
		return
	}

	for _, c := range cases {
		if errors.Is(err, c.Target) {
			message := c.Message
			if message == "" {
				message = err.Error()
			}
			api.Fail(w, c.Status, c.Code, message, requestID)
			return
		}
	}

	if errors.Is(err, auth.ErrForbidden) {
		api.Forbidden(w, "not allowed", requestID)
		return
	}

	slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "requestId", requestID, "err", err)
	api.Fail(w, http.StatusInternalServerError, "internal_error", "unexpected error", requestID)
}
