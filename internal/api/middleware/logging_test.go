package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/pkg/logger"
)

func TestRequestLogging_TagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	e := echo.New()
	e.Use(echomiddleware.RequestID(), ContextLogger(base), RequestLogger(base))
	e.GET("/ping", func(c echo.Context) error {
		l := logger.FromContext(c.Request().Context())
		l.Info().Msg("inside")
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, l := range lines {
		if !strings.Contains(l, `"request_id":"rid-1"`) {
			t.Fatalf("missing request id in %s", l)
		}
	}
	if !strings.Contains(lines[1], `"status":200`) || !strings.Contains(lines[1], `"uri":"/ping"`) {
		t.Fatalf("unexpected access log: %s", lines[1])
	}
}
