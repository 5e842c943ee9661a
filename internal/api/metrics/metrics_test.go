package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_CountsRoutedAndUnmatched(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/band/:id", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/band/:id", "200"))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/band/7", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/band/:id", "200"))
	if after-before != 1 {
		t.Fatalf("expected one routed request, got %v", after-before)
	}

	before = testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")) - before; got != 1 {
		t.Fatalf("expected one failed request, got %v", got)
	}

	before = testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")) - before; got != 1 {
		t.Fatalf("expected one unmatched request, got %v", got)
	}
}

func TestHandler_ExposesNamespace(t *testing.T) {
	RegistrationsTotal.WithLabelValues(ResultSuccess).Inc()

	e := echo.New()
	e.GET("/metrics", Handler())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "bandhub_registrations_total") {
		t.Fatalf("expected bandhub metrics in output")
	}
}

func TestErrResult(t *testing.T) {
	invalid := errors.New("invalid")
	cases := []struct {
		err  error
		want string
	}{
		{nil, ResultSuccess},
		{invalid, ResultInvalid},
		{errors.New("db down"), ResultError},
	}
	for _, tc := range cases {
		if got := ErrResult(tc.err, invalid); got != tc.want {
			t.Fatalf("ErrResult(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
