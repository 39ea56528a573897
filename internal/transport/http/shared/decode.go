package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hrconsole/internal/transport/http/api"
	"hrconsole/internal/transport/http/middleware"
)

// DecodeJSON reads the request body into dst. On failure it writes the error
// response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
		case errors.Is(err, io.EOF):
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body is empty", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		}
		return false
	}
	return true
}
