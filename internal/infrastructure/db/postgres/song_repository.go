package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// SongRepository stores song submissions.
type SongRepository struct {
	db *sql.DB
}

func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Insert stores s. An empty SpotifyURL is written as NULL.
func (r *SongRepository) Insert(ctx context.Context, s *domain.SongSubmission) (int64, error) {
	query := `
		INSERT INTO song_submissions (song_name, artist_name, youtube_url, spotify_url, release_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	spotify := sql.NullString{String: s.SpotifyURL, Valid: s.SpotifyURL != ""}

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		s.SongName, s.ArtistName, s.YoutubeURL, spotify, s.ReleaseDate, s.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert song submission: %w", err)
	}
	return id, nil
}
