package handler

import "github.com/labstack/echo/v4"

// Static renders a template that needs no data.
func Static(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, name, newPage(c, title))
	}
}
