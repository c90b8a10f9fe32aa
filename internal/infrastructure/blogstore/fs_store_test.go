package blogstore

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"numguru/internal/domain/blog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"life-path-1.json":    {Data: []byte(`{"id":"1","title":"Life Path 1","slug":"life-path-1","date":"2024-01-10","content":"..."}`)},
		"master-numbers.json": {Data: []byte(`{"id":"2","title":"Master Numbers","slug":"master-numbers-explained","date":"Mar 5, 2025"}`)},
		"draft.json":          {Data: []byte(`{"title":"No id"}`)},
		"broken.json":         {Data: []byte(`{`)},
		"notes.txt":           {Data: []byte(`ignored`)},
	}
}

func TestFSStore_List(t *testing.T) {
	s, err := NewFSStore(testFS(), 8, time.Minute, nil)
	require.NoError(t, err)

	posts, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "master-numbers-explained", posts[0].Slug)
	assert.Equal(t, "life-path-1", posts[1].Slug)
}

func TestFSStore_Get(t *testing.T) {
	s, err := NewFSStore(testFS(), 8, time.Minute, nil)
	require.NoError(t, err)
	ctx := context.Background()

	p, err := s.Get(ctx, "life-path-1")
	require.NoError(t, err)
	assert.Equal(t, "Life Path 1", p.Title)

	p, err = s.Get(ctx, "master-numbers-explained")
	require.NoError(t, err)
	assert.Equal(t, "2", p.ID)

	for _, slug := range []string{"missing", "", "../etc/passwd", ".hidden", "draft"} {
		_, err = s.Get(ctx, slug)
		assert.Truef(t, errors.Is(err, blog.ErrPostNotFound), "slug %q", slug)
	}
}

func TestFSStore_CacheRefreshesOnChange(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":              {Data: []byte(`{"id":"1","slug":"a","title":"v1"}`), ModTime: time.Unix(1, 0)},
	}
	s, err := NewFSStore(fsys, 8, time.Hour, nil)
	require.NoError(t, err)

	p, err := s.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "v1", p.Title)

	fsys["a.json"] = &fstest.MapFile{Data: []byte(`{"id":"1","slug":"a","title":"v2"}`), ModTime: time.Unix(1, 0)}
	p, _ = s.Get(context.Background(), "a")
	assert.Equal(t, "v1", p.Title, "unchanged mod time within TTL is served from cache")

	fsys["a.json"] = &fstest.MapFile{Data: []byte(`{"id":"1","slug":"a","title":"v3"}`), ModTime: time.Unix(2, 0)}
	p, _ = s.Get(context.Background(), "a")
	assert.Equal(t, "v3", p.Title)

	now := time.Now()
	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	fsys["a.json"] = &fstest.MapFile{Data: []byte(`{"id":"1","slug":"a","title":"v4"}`), ModTime: time.Unix(2, 0)}
	p, _ = s.Get(context.Background(), "a")
	assert.Equal(t, "v4", p.Title)
}

func TestFSStore_Slugs(t *testing.T) {
	s, err := NewFSStore(testFS(), 0, 0, nil)
	require.NoError(t, err)
	slugs, err := s.Slugs()
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "draft", "life-path-1", "master-numbers"}, slugs)
}

func TestFSStore_MissingDir(t *testing.T) {
	s, err := NewFSStore(fstest.MapFS{}, 0, 0, nil)
	require.NoError(t, err)
	posts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}
