package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bandhub/bandhub/internal/api/metrics"
	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

const releaseDateLayout = "2006-01-02"

type SongHandler struct {
	songs ports.SongService
}

func NewSongHandler(songs ports.SongService) *SongHandler {
	return &SongHandler{songs: songs}
}

type songForm struct {
	SongName    string `form:"song_name"`
	ArtistName  string `form:"artist_name"`
	YoutubeURL  string `form:"youtube_url"`
	SpotifyURL  string `form:"spotify_url"`
	ReleaseDate string `form:"release_date" validate:"omitempty,datetime=2006-01-02"`
}

func (f songForm) values() map[string]string {
	return map[string]string{
		"song_name":    f.SongName,
		"artist_name":  f.ArtistName,
		"youtube_url":  f.YoutubeURL,
		"spotify_url":  f.SpotifyURL,
		"release_date": f.ReleaseDate,
	}
}

func (h *SongHandler) SubmitPage(c echo.Context) error {
	return render(c, "submit_song", newPage(c, "Suggest a song"))
}

// Submit handles POST /submit_song and redirects to the login page.
func (h *SongHandler) Submit(c echo.Context) error {
	var form songForm
	if err := c.Bind(&form); err != nil {
		return err
	}
	form.ReleaseDate = strings.TrimSpace(form.ReleaseDate)

	in := ports.SubmitSongInput{
		SongName:   form.SongName,
		ArtistName: form.ArtistName,
		YoutubeURL: form.YoutubeURL,
		SpotifyURL: form.SpotifyURL,
	}
	err := c.Validate(&form)
	if err == nil && form.ReleaseDate != "" {
		in.ReleaseDate, err = time.Parse(releaseDateLayout, form.ReleaseDate)
	}
	if err == nil {
		_, err = h.songs.Submit(c.Request().Context(), in)
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		metrics.SongSubmissionsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		p := newPage(c, "Suggest a song")
		p.Errors = verr.Messages
		p.Values = form.values()
		return render(c, "submit_song", p)
	case err != nil:
		metrics.SongSubmissionsTotal.WithLabelValues(metrics.ResultError).Inc()
		return fmt.Errorf("submit song: %w", err)
	}

	metrics.SongSubmissionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.Redirect(http.StatusFound, loginPath)
}
