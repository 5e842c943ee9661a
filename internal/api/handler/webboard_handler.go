package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/api/metrics"
	"github.com/bandhub/bandhub/internal/api/middleware"
	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

type WebboardHandler struct {
	boards  ports.WebboardService
	catalog ports.CatalogService
}

func NewWebboardHandler(boards ports.WebboardService, catalog ports.CatalogService) *WebboardHandler {
	return &WebboardHandler{boards: boards, catalog: catalog}
}

type postForm struct {
	Body string `form:"body"`
}

// Index renders GET /webboard with a link to every band's board.
func (h *WebboardHandler) Index(c echo.Context) error {
	bands, err := h.catalog.ListBands(c.Request().Context())
	if err != nil {
		return err
	}
	p := newPage(c, "Webboard")
	p.Data = bands
	return render(c, "webboard_index", p)
}

// Board renders GET /webboard/:id.
func (h *WebboardHandler) Board(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.renderBoard(c, id, nil, "")
}

// CreatePost handles POST /webboard/:id for the session user.
func (h *WebboardHandler) CreatePost(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form postForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	_, err = h.boards.CreatePost(c.Request().Context(), ports.CreatePostInput{
		BandID:   id,
		AuthorID: middleware.SessionFrom(c).UserID,
		Body:     form.Body,
	})

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.WebboardPostsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return h.renderBoard(c, id, verr.Messages, form.Body)
	case errors.Is(err, domain.ErrBandNotFound):
		return err
	case err != nil:
		metrics.WebboardPostsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("create post: %w", err)
	}

	metrics.WebboardPostsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.Redirect(http.StatusFound, fmt.Sprintf("/webboard/%d", id))
}

func (h *WebboardHandler) renderBoard(c echo.Context, bandID int64, errs []string, body string) error {
	board, err := h.boards.Page(c.Request().Context(), bandID)
	if err != nil {
		return err
	}
	p := newPage(c, board.Band.Name)
	p.Data = board
	p.Errors = errs
	p.Values = map[string]string{"body": body}
	return render(c, "webboard", p)
}
