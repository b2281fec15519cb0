package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(httptest.NewRequest("GET", "/api/admin/employees", nil))
	if p.Limit != DefaultPageSize || p.Offset != 0 {
		t.Fatalf("expected defaults, got limit %d offset %d", p.Limit, p.Offset)
	}
}

func TestParsePaginationClampsAndIgnoresGarbage(t *testing.T) {
	p := ParsePagination(httptest.NewRequest("GET", "/api/admin/employees?limit=9999&offset=30", nil))
	if p.Limit != MaxPageSize {
		t.Fatalf("expected limit clamped to %d, got %d", MaxPageSize, p.Limit)
	}
	if p.Offset != 30 {
		t.Fatalf("expected offset 30, got %d", p.Offset)
	}

	p = ParsePagination(httptest.NewRequest("GET", "/api/admin/employees?limit=abc&offset=-5", nil))
	if p.Limit != DefaultPageSize || p.Offset != 0 {
		t.Fatalf("expected defaults for malformed values, got limit %d offset %d", p.Limit, p.Offset)
	}
}
