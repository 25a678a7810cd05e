package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptions(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders?page=3&limit=25&status=pending&state=st1", nil)
	opts := ParseQueryOptions(r)
	if opts.Page != 3 || opts.Limit != 25 {
		t.Errorf("page/limit = %d/%d, want 3/25", opts.Page, opts.Limit)
	}
	if opts.Status != "pending" || opts.State != "st1" {
		t.Errorf("status/state = %q/%q", opts.Status, opts.State)
	}
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	opts := ParseQueryOptions(r)
	if opts.Page != 1 || opts.Limit != 10 {
		t.Errorf("defaults = %d/%d, want 1/10", opts.Page, opts.Limit)
	}

	r = httptest.NewRequest(http.MethodGet, "/api/admin/orders?page=-2&limit=0", nil)
	opts = ParseQueryOptions(r)
	if opts.Page != 1 || opts.Limit != 10 {
		t.Errorf("bad values = %d/%d, want 1/10", opts.Page, opts.Limit)
	}
}

func TestParseQueryOptionsCapsLimit(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders?limit=5000", nil)
	opts := ParseQueryOptions(r)
	if opts.Limit != maxPageSize {
		t.Errorf("limit = %d, want capped at %d", opts.Limit, maxPageSize)
	}
}
