package shared

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

// PathID reads a UUID route parameter. A malformed id cannot name a stored
// record, so it is answered with 404 directly.
func PathID(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", param+" is not a valid id", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return id.String(), true
}
