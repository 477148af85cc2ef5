package httpapi_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/httpapi"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFound("order %q not found", "x"), http.StatusNotFound},
		{"invalid argument", apperr.InvalidArgument("bad input"), http.StatusBadRequest},
		{"conflict", apperr.Conflict("already exists"), http.StatusConflict},
		{"unavailable", apperr.Unavailable(errors.New("down"), "store"), http.StatusServiceUnavailable},
		{"internal", apperr.Internal(errors.New("boom"), "oops"), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := httpapi.StatusOf(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	httpapi.WriteError(rec, apperr.NotFound("product %q not found", "prod-1"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %s", ct)
	}
}
