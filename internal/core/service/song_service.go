package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

// MsgAllFieldsRequired is shown when a mandatory song field is blank.
const MsgAllFieldsRequired = "All fields are required!"

type songService struct {
	repo ports.SongRepository
	log  zerolog.Logger
}

func NewSongService(repo ports.SongRepository, log zerolog.Logger) ports.SongService {
	return &songService{repo: repo, log: log}
}

// Submit stores a song suggestion. Every field except SpotifyURL is required.
func (s *songService) Submit(ctx context.Context, in ports.SubmitSongInput) (int64, error) {
	in.SongName = strings.TrimSpace(in.SongName)
	in.ArtistName = strings.TrimSpace(in.ArtistName)
	in.YoutubeURL = strings.TrimSpace(in.YoutubeURL)
	in.SpotifyURL = strings.TrimSpace(in.SpotifyURL)

	if in.SongName == "" || in.ArtistName == "" || in.YoutubeURL == "" || in.ReleaseDate.IsZero() {
		return 0, &domain.ValidationError{Messages: []string{MsgAllFieldsRequired}}
	}

	sub := &domain.SongSubmission{
		SongName:    in.SongName,
		ArtistName:  in.ArtistName,
		YoutubeURL:  in.YoutubeURL,
		SpotifyURL:  in.SpotifyURL,
		ReleaseDate: in.ReleaseDate,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.repo.Insert(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("submit song: %w", err)
	}

	s.log.Info().Int64("submission_id", id).Str("song", in.SongName).Msg("song submitted")
	return id, nil
}
