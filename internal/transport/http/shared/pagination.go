package shared

import (
	"net/http"
	"strconv"
)

// Every list endpoint in the API shares the same page bounds.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset from the query string. Malformed or
// out-of-range values fall back to the defaults rather than failing the
// request.
func ParsePagination(r *http.Request) Pagination {
	limit := DefaultPageSize
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Pagination{Limit: limit, Offset: offset}
}
