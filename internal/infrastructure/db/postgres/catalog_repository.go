package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// CatalogRepository reads bands, artists and channels.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const (
	bandColumns   = `id, name, picture, genre, description`
	artistColumns = `id, band_id, name, picture, position`
)

func (r *CatalogRepository) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	return r.queryArtists(ctx, `SELECT `+artistColumns+` FROM artists ORDER BY id`)
}

func (r *CatalogRepository) ArtistsByBand(ctx context.Context, bandID int64) ([]domain.Artist, error) {
	return r.queryArtists(ctx, `SELECT `+artistColumns+` FROM artists WHERE band_id = $1 ORDER BY id`, bandID)
}

func (r *CatalogRepository) ListBands(ctx context.Context) ([]domain.Band, error) {
	return r.queryBands(ctx, `SELECT `+bandColumns+` FROM bands ORDER BY id`)
}

func (r *CatalogRepository) FindBand(ctx context.Context, id int64) (*domain.Band, error) {
	var b domain.Band
	err := r.db.QueryRowContext(ctx, `SELECT `+bandColumns+` FROM bands WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Picture, &b.Genre, &b.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBandNotFound
		}
		return nil, fmt.Errorf("find band: %w", err)
	}
	return &b, nil
}

// ChannelByBand returns the first channel row of the band, or nil when there is none.
func (r *CatalogRepository) ChannelByBand(ctx context.Context, bandID int64) (*domain.Channel, error) {
	query := `
		SELECT band_id, youtube_url, spotify_url, facebook_url, instagram_url
		FROM channels WHERE band_id = $1 ORDER BY id LIMIT 1`
	var ch domain.Channel
	err := r.db.QueryRowContext(ctx, query, bandID).
		Scan(&ch.BandID, &ch.YoutubeURL, &ch.SpotifyURL, &ch.FacebookURL, &ch.InstagramURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find channel: %w", err)
	}
	return &ch, nil
}

// SearchBands matches name case-insensitively. LIKE wildcards in term are
// matched literally.
func (r *CatalogRepository) SearchBands(ctx context.Context, term string, limit int) ([]domain.Band, error) {
	pattern := "%" + escapeLike(term) + "%"
	return r.queryBands(ctx,
		`SELECT `+bandColumns+` FROM bands WHERE name ILIKE $1 ESCAPE '\' ORDER BY name LIMIT $2`,
		pattern, limit)
}

func (r *CatalogRepository) queryBands(ctx context.Context, query string, args ...any) ([]domain.Band, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bands: %w", err)
	}
	defer rows.Close()

	var list []domain.Band
	for rows.Next() {
		var b domain.Band
		if err := rows.Scan(&b.ID, &b.Name, &b.Picture, &b.Genre, &b.Description); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *CatalogRepository) queryArtists(ctx context.Context, query string, args ...any) ([]domain.Artist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query artists: %w", err)
	}
	defer rows.Close()

	var list []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.BandID, &a.Name, &a.Picture, &a.Position); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
