package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/bandhub/bandhub/internal/core/domain"
	"github.com/bandhub/bandhub/internal/core/ports"
)

const (
	// PostPageSize is the number of posts shown on a webboard.
	PostPageSize = 50
	// MaxPostLength is counted in characters after trimming.
	MaxPostLength = 2000

	MsgPostEmpty   = "Post is empty!"
	MsgPostTooLong = "The post must be at most 2000 characters"
)

type webboardService struct {
	catalog ports.CatalogRepository
	posts   ports.PostRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewWebboardService(catalog ports.CatalogRepository, posts ports.PostRepository, users ports.UserRepository, log zerolog.Logger) ports.WebboardService {
	return &webboardService{catalog: catalog, posts: posts, users: users, log: log}
}

func (s *webboardService) Page(ctx context.Context, bandID int64) (*ports.WebboardPage, error) {
	band, err := s.catalog.FindBand(ctx, bandID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByBand(ctx, bandID, PostPageSize)
	if err != nil {
		return nil, fmt.Errorf("webboard page: %w", err)
	}
	return &ports.WebboardPage{Band: *band, Posts: posts}, nil
}

// CreatePost appends a message to a band's board. The author name is copied
// from the user row at posting time.
func (s *webboardService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	in.Body = strings.TrimSpace(in.Body)
	switch {
	case in.Body == "":
		return nil, &domain.ValidationError{Messages: []string{MsgPostEmpty}}
	case utf8.RuneCountInString(in.Body) > MaxPostLength:
		return nil, &domain.ValidationError{Messages: []string{MsgPostTooLong}}
	}

	if _, err := s.catalog.FindBand(ctx, in.BandID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("create post: author: %w", err)
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		BandID:     in.BandID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Body:       in.Body,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Int64("band_id", in.BandID).Int64("author_id", author.ID).Msg("webboard post created")
	return post, nil
}
