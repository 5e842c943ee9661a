package ports

import (
	"context"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// CatalogRepository reads bands, artists and channels.
type CatalogRepository interface {
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	ListBands(ctx context.Context) ([]domain.Band, error)
	// FindBand returns domain.ErrBandNotFound when no row matches.
	FindBand(ctx context.Context, id int64) (*domain.Band, error)
	ArtistsByBand(ctx context.Context, bandID int64) ([]domain.Artist, error)
	// ChannelByBand returns nil, nil when the band has no channel row.
	ChannelByBand(ctx context.Context, bandID int64) (*domain.Channel, error)
	SearchBands(ctx context.Context, term string, limit int) ([]domain.Band, error)
}

// SongRepository persists song submissions.
type SongRepository interface {
	Insert(ctx context.Context, s *domain.SongSubmission) (int64, error)
}

// PostRepository persists webboard posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	ListByBand(ctx context.Context, bandID int64, limit int) ([]domain.Post, error)
}
