package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Index lists every artist.
func (h *CatalogHandler) Index(c echo.Context) error {
	artists, err := h.catalog.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	p := newPage(c, "Artists")
	p.Data = artists
	return render(c, "index", p)
}

func (h *CatalogHandler) Bands(c echo.Context) error {
	bands, err := h.catalog.ListBands(c.Request().Context())
	if err != nil {
		return err
	}
	p := newPage(c, "Bands")
	p.Data = bands
	return render(c, "bands", p)
}

// Band renders GET /band/:id.
func (h *CatalogHandler) Band(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.catalog.BandDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	p := newPage(c, detail.Band.Name)
	p.Data = detail
	return render(c, "artist", p)
}

// TrackingChannel renders GET /Tracking_channel/:id.
func (h *CatalogHandler) TrackingChannel(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	detail, err := h.catalog.TrackingDetail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	p := newPage(c, detail.Band.Name)
	p.Data = detail
	return render(c, "tracking_channel", p)
}

// Search renders GET /search?q=.
func (h *CatalogHandler) Search(c echo.Context) error {
	res, err := h.catalog.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	p := newPage(c, "Search")
	p.Data = res
	return render(c, "search", p)
}
