package ports

import (
	"context"
	"time"

	"github.com/bandhub/bandhub/internal/core/domain"
)

// BandDetail is a band together with its members.
type BandDetail struct {
	Band    domain.Band
	Artists []domain.Artist
}

// TrackingDetail adds the band's social channels, nil when none exist.
type TrackingDetail struct {
	BandDetail
	Channel *domain.Channel
}

// SearchResult is the outcome of a band search.
type SearchResult struct {
	Term  string
	Bands []domain.Band
}

// CatalogService exposes the read side of the catalog.
type CatalogService interface {
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	ListBands(ctx context.Context) ([]domain.Band, error)
	BandDetail(ctx context.Context, id int64) (*BandDetail, error)
	TrackingDetail(ctx context.Context, id int64) (*TrackingDetail, error)
	Search(ctx context.Context, term string) (*SearchResult, error)
}

// SubmitSongInput carries the song form after binding.
type SubmitSongInput struct {
	SongName    string
	ArtistName  string
	YoutubeURL  string
	SpotifyURL  string
	ReleaseDate time.Time
}

// SongService accepts song submissions.
type SongService interface {
	Submit(ctx context.Context, in SubmitSongInput) (int64, error)
}

// WebboardPage is a band with its latest posts.
type WebboardPage struct {
	Band  domain.Band
	Posts []domain.Post
}

// CreatePostInput is a new webboard message by the session user.
type CreatePostInput struct {
	BandID   int64
	AuthorID int64
	Body     string
}

// WebboardService reads and writes band message boards.
type WebboardService interface {
	Page(ctx context.Context, bandID int64) (*WebboardPage, error)
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
}
