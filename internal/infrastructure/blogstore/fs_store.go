package blogstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"numguru/internal/domain/blog"
	"numguru/internal/pkg/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
	postExt          = ".json"
)

type cacheEntry struct {
	post     blog.Post
	modTime  time.Time
	storedAt time.Time
}

// FSStore reads one post per *.json file. Parsed posts are cached by file
// name and re-read when the file changes or the entry is older than the TTL.
type FSStore struct {
	fsys   fs.FS
	cache  *lru.Cache[string, cacheEntry]
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewFSStore(fsys fs.FS, size int, ttl time.Duration, l *zap.Logger) (*FSStore, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("blog cache: %w", err)
	}
	return &FSStore{fsys: fsys, cache: c, ttl: ttl, logger: logger.OrNop(l), now: time.Now}, nil
}

// Slugs lists the slugs derived from file names, sorted. A missing directory
// yields no slugs.
func (s *FSStore) Slugs() ([]string, error) {
	names, err := s.fileNames()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(n, postExt))
	}
	return out, nil
}

// List returns every valid post, newest first. Unreadable or incomplete files
// are logged and skipped.
func (s *FSStore) List(ctx context.Context) ([]blog.Post, error) {
	names, err := s.fileNames()
	if err != nil {
		return nil, err
	}

	posts := make([]blog.Post, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.load(name)
		if err != nil {
			s.logger.Warn("skipping blog post", zap.String("file", name), zap.Error(err))
			continue
		}
		posts = append(posts, p)
	}

	blog.SortNewestFirst(posts)
	return posts, nil
}

func (s *FSStore) Get(ctx context.Context, slug string) (blog.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || strings.ContainsAny(slug, `/\`) || strings.HasPrefix(slug, ".") {
		return blog.Post{}, blog.ErrPostNotFound
	}

	if p, err := s.load(slug + postExt); err == nil && p.Slug == slug {
		return p, nil
	}

	// file names and slugs usually match, but the slug field wins
	posts, err := s.List(ctx)
	if err != nil {
		return blog.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return blog.Post{}, blog.ErrPostNotFound
}

func (s *FSStore) fileNames() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("blog directory not found")
			return nil, nil
		}
		return nil, fmt.Errorf("read blog dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != postExt {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *FSStore) load(name string) (blog.Post, error) {
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return blog.Post{}, err
	}

	now := s.now()
	if e, ok := s.cache.Get(name); ok {
		if e.modTime.Equal(info.ModTime()) && now.Sub(e.storedAt) < s.ttl {
			return e.post, nil
		}
		s.cache.Remove(name)
	}

	b, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return blog.Post{}, err
	}
	var p blog.Post
	if err := json.Unmarshal(b, &p); err != nil {
		return blog.Post{}, fmt.Errorf("decode: %w", err)
	}
	if !p.Valid() {
		return blog.Post{}, errors.New("missing id or slug")
	}

	s.cache.Add(name, cacheEntry{post: p, modTime: info.ModTime(), storedAt: now})
	return p, nil
}
