package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/api/handler"
	"github.com/bandhub/bandhub/internal/api/metrics"
	"github.com/bandhub/bandhub/internal/api/middleware"
	"github.com/bandhub/bandhub/internal/api/web"
	"github.com/bandhub/bandhub/internal/core/ports"
)

// SessionStore reads, issues and clears the session cookie.
type SessionStore interface {
	middleware.SessionReader
	handler.SessionStore
}

// Deps is everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Songs    ports.SongService
	Webboard ports.WebboardService
	Sessions SessionStore
	Checks   []handler.DependencyCheck

	// PublicDir and PicturesDir are served as static files when set.
	PublicDir   string
	PicturesDir string
}

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	mw      []echo.MiddlewareFunc
}

// NewRouter builds the Echo instance. The route table is fixed at startup.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(d.Log))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.Middleware())
	e.Use(middleware.LoadSession(d.Sessions))

	for _, r := range routes(d) {
		e.Add(r.method, r.path, r.handler, r.mw...)
	}

	if d.PicturesDir != "" {
		e.Static("/pic", d.PicturesDir)
	}
	if d.PublicDir != "" {
		e.Static("/", d.PublicDir)
	}
	return e, nil
}

func routes(d Deps) []route {
	auth := handler.NewAuthHandler(d.Auth, d.Sessions, d.Log)
	catalog := handler.NewCatalogHandler(d.Catalog)
	songs := handler.NewSongHandler(d.Songs)
	boards := handler.NewWebboardHandler(d.Webboard, d.Catalog)
	health := handler.NewHealthHandler()
	ready := handler.NewHealthDependenciesHandler(d.Checks...)

	signedIn := middleware.RequireSession(auth.RegisterPage)
	anonymous := middleware.RequireNoSession()

	return []route{
		// --- Catalog ---
		{http.MethodGet, "/", catalog.Index, nil},
		{http.MethodGet, "/bands", catalog.Bands, nil},
		{http.MethodGet, "/band/:id", catalog.Band, nil},
		{http.MethodGet, "/Tracking_channel/:id", catalog.TrackingChannel, nil},
		{http.MethodGet, "/search", catalog.Search, nil},

		// --- Auth ---
		{http.MethodGet, "/register", auth.RegisterPage, nil},
		{http.MethodPost, "/register", auth.Register, []echo.MiddlewareFunc{anonymous}},
		{http.MethodGet, "/login", auth.LoginPage, []echo.MiddlewareFunc{anonymous}},
		{http.MethodPost, "/login", auth.Login, []echo.MiddlewareFunc{anonymous}},
		{http.MethodGet, "/logout", auth.Logout, nil},
		{http.MethodGet, "/main", auth.Main, []echo.MiddlewareFunc{signedIn}},
		{http.MethodGet, "/profile", auth.Profile, []echo.MiddlewareFunc{signedIn}},

		// --- Songs and webboard ---
		{http.MethodGet, "/submit_song", songs.SubmitPage, nil},
		{http.MethodPost, "/submit_song", songs.Submit, nil},
		{http.MethodGet, "/webboard", boards.Index, nil},
		{http.MethodGet, "/webboard/:id", boards.Board, nil},
		{http.MethodPost, "/webboard/:id", boards.CreatePost, []echo.MiddlewareFunc{signedIn}},

		// --- Informational pages ---
		{http.MethodGet, "/information", handler.Static("information", "Information"), nil},
		{http.MethodGet, "/song", handler.Static("song", "Songs"), nil},
		{http.MethodGet, "/Create_post", handler.Static("create_post", "Create a post"), nil},

		// --- Operations ---
		{http.MethodGet, "/health", health.Liveness, nil},
		{http.MethodGet, "/health/ready", ready.Readiness, nil},
		{http.MethodGet, "/metrics", metrics.Handler(), nil},
	}
}
