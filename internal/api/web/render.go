// Package web renders the HTML pages served by the router.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page is the data every template receives.
type Page struct {
	Title    string
	LoggedIn bool
	Errors   []string
	// Values repopulates form fields, keyed by input name.
	Values map[string]string
	Data   any
}

// Renderer implements echo.Renderer over the embedded templates. A template
// named "login" is looked up as "login.html".
type Renderer struct {
	tpl *template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
}

// NewRenderer parses all templates once.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// MustRenderer is NewRenderer for wiring code and tests.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tpl.ExecuteTemplate(w, name+".html", data)
}
