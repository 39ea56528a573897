package shared

import (
	"net/http"
	"strconv"

	"hrconsole/internal/platform/db"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ParsePagination reads ?limit=&offset= or the console's ?page=&pageSize=
// (1-based). Malformed values fall back to the defaults instead of failing
// the list.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) db.Page {
	q := r.URL.Query()
	limit := positive(q.Get("limit"), 0)
	if limit == 0 {
		limit = positive(q.Get("pageSize"), defaultLimit)
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	offset := positive(q.Get("offset"), 0)
	if q.Get("offset") == "" {
		if page := positive(q.Get("page"), 1); page > 1 {
			offset = (page - 1) * limit
		}
	}
	return db.Page{Limit: limit, Offset: offset}
}

func positive(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
