package blog

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrPostNotFound = errors.New("blog post not found")

type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// Summary is a post without its body, for listings.
type Summary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

func (p Post) Summary() Summary {
	return Summary{
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		Excerpt:  p.Excerpt,
		Date:     p.Date,
		ReadTime: p.ReadTime,
		Category: p.Category,
		Image:    p.Image,
	}
}

func (p Post) Valid() bool {
	return strings.TrimSpace(p.ID) != "" && strings.TrimSpace(p.Slug) != ""
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "Jan 2, 2006", "January 2, 2006"}

// ParseDate accepts the date formats authors use in post files.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortNewestFirst orders posts by date descending. Undated posts go last,
// ties fall back to slug.
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, oki := ParseDate(posts[i].Date)
		tj, okj := ParseDate(posts[j].Date)
		switch {
		case oki && okj && !ti.Equal(tj):
			return ti.After(tj)
		case oki != okj:
			return oki
		default:
			return posts[i].Slug < posts[j].Slug
		}
	})
}
