package blog

import (
	"context"
	"fmt"
	"strings"

	"numguru/internal/domain/blog"
)

type Store interface {
	List(ctx context.Context) ([]blog.Post, error)
	Get(ctx context.Context, slug string) (blog.Post, error)
	Slugs() ([]string, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns post summaries, newest first.
func (s *Service) List(ctx context.Context) ([]blog.Summary, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	out := make([]blog.Summary, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Summary())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, slug string) (blog.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return blog.Post{}, blog.ErrPostNotFound
	}
	return s.store.Get(ctx, slug)
}

func (s *Service) Slugs() ([]string, error) {
	return s.store.Slugs()
}
