package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

// SearchLimit caps the number of bands returned by a search.
const SearchLimit = 25

// CatalogCache abstracts the read-through cache (Redis). A miss is reported
// as (nil, false, nil).
type CatalogCache interface {
	GetBands(ctx context.Context) ([]domain.Band, bool, error)
	SetBands(ctx context.Context, bands []domain.Band) error
	GetSearch(ctx context.Context, term string) ([]domain.Band, bool, error)
	SetSearch(ctx context.Context, term string, bands []domain.Band) error
}

type catalogService struct {
	repo  ports.CatalogRepository
	cache CatalogCache
	log   zerolog.Logger
}

// NewCatalogService returns a CatalogService. cache may be nil.
func NewCatalogService(repo ports.CatalogRepository, cache CatalogCache, log zerolog.Logger) ports.CatalogService {
	return &catalogService{repo: repo, cache: cache, log: log}
}

func (s *catalogService) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	artists, err := s.repo.ListArtists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

func (s *catalogService) ListBands(ctx context.Context) ([]domain.Band, error) {
	if s.cache != nil {
		bands, hit, err := s.cache.GetBands(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("band cache read failed, querying store")
		} else if hit {
			return bands, nil
		}
	}

	bands, err := s.repo.ListBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bands: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetBands(ctx, bands); err != nil {
			s.log.Warn().Err(err).Msg("band cache write failed")
		}
	}
	return bands, nil
}

func (s *catalogService) BandDetail(ctx context.Context, id int64) (*ports.BandDetail, error) {
	band, err := s.repo.FindBand(ctx, id)
	if err != nil {
		return nil, err
	}
	artists, err := s.repo.ArtistsByBand(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("band detail: artists: %w", err)
	}
	return &ports.BandDetail{Band: *band, Artists: artists}, nil
}

func (s *catalogService) TrackingDetail(ctx context.Context, id int64) (*ports.TrackingDetail, error) {
	detail, err := s.BandDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	ch, err := s.repo.ChannelByBand(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tracking detail: channel: %w", err)
	}
	return &ports.TrackingDetail{BandDetail: *detail, Channel: ch}, nil
}

// Search matches band names case-insensitively. An empty term matches every
// band up to SearchLimit.
func (s *catalogService) Search(ctx context.Context, term string) (*ports.SearchResult, error) {
	term = strings.TrimSpace(term)

	if s.cache != nil {
		bands, hit, err := s.cache.GetSearch(ctx, term)
		if err != nil {
			s.log.Warn().Err(err).Str("term", term).Msg("search cache read failed, querying store")
		} else if hit {
			return &ports.SearchResult{Term: term, Bands: bands}, nil
		}
	}

	bands, err := s.repo.SearchBands(ctx, term, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search bands: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, term, bands); err != nil {
			s.log.Warn().Err(err).Str("term", term).Msg("search cache write failed")
		}
	}
	return &ports.SearchResult{Term: term, Bands: bands}, nil
}
