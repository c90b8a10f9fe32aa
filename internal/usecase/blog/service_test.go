package blog

import (
	"context"
	"errors"
	"testing"

	"numguru/internal/domain/blog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	posts []blog.Post
	err   error
}

func (s fakeStore) List(context.Context) ([]blog.Post, error) { return s.posts, s.err }

func (s fakeStore) Get(_ context.Context, slug string) (blog.Post, error) {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return blog.Post{}, blog.ErrPostNotFound
}

func (s fakeStore) Slugs() ([]string, error) {
	out := make([]string, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Slug)
	}
	return out, nil
}

func TestService_ListDropsContent(t *testing.T) {
	svc := NewService(fakeStore{posts: []blog.Post{
		{ID: "1", Slug: "a", Title: "A", Content: "long body"},
	}})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []blog.Summary{{ID: "1", Slug: "a", Title: "A"}}, got)
}

func TestService_ListError(t *testing.T) {
	svc := NewService(fakeStore{err: errors.New("disk")})

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestService_Get(t *testing.T) {
	svc := NewService(fakeStore{posts: []blog.Post{{ID: "1", Slug: "a", Content: "body"}}})

	p, err := svc.Get(context.Background(), " a ")
	require.NoError(t, err)
	assert.Equal(t, "body", p.Content)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
	_, err = svc.Get(context.Background(), "zzz")
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}
