package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/api/middleware"
	"github.com/bandhub/bandhub/internal/api/web"
)

func newPage(c echo.Context, title string) web.Page {
	return web.Page{Title: title, LoggedIn: middleware.SessionFrom(c).Authenticated()}
}

func render(c echo.Context, name string, p web.Page) error {
	return c.Render(http.StatusOK, name, p)
}

// pathID parses the :id route parameter. A malformed id is a 404.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrNotFound
	}
	return id, nil
}

// formFieldName reports a struct field by its form tag so validation
// messages name the input the user sees.
func formFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
