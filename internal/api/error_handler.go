package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/pkg/logger"
)

const (
	notFoundBody    = "<h1>404 Page Not Found!</h1>"
	bandNotFound    = "Band not found"
	serverErrorBody = "Server Error"
)

// NewHTTPErrorHandler returns the single place where handler errors become
// responses:
//   - unmatched routes, unmatched methods and malformed ids get the fixed
//     404 page,
//   - domain.ErrBandNotFound is a 404 naming the band,
//   - other echo errors keep their status with the standard status text,
//   - anything else is logged and answered with a bare 500.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.HTML(code, body)
	}
}

func resolveError(err error, c echo.Context) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, domain.ErrBandNotFound):
		return http.StatusNotFound, bandNotFound
	case errors.As(err, &he):
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound, notFoundBody
		}
		if he.Code < http.StatusInternalServerError {
			return he.Code, http.StatusText(he.Code)
		}
	}

	log := logger.FromContext(c.Request().Context())
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("uri", c.Request().RequestURI).
		Msg("unhandled error")

	return http.StatusInternalServerError, serverErrorBody
}
