// Package sitemap renders the public site's sitemap.xml.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type page struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []page{
	{"/", "daily", "1.0"},
	{"/blog", "daily", "0.9"},
	{"/privacy-policy", "monthly", "0.3"},
	{"/terms-conditions", "monthly", "0.3"},
	{"/refund-policy", "monthly", "0.3"},
}

// Build lists the static pages followed by one entry per blog slug, all
// stamped with the date of now.
func Build(baseURL string, slugs []string, now time.Time) URLSet {
	baseURL = strings.TrimRight(baseURL, "/")
	today := now.UTC().Format("2006-01-02")

	set := URLSet{Xmlns: xmlns, URLs: make([]URL, 0, len(staticPages)+len(slugs))}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + p.path,
			LastMod:    today,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}
	for _, slug := range slugs {
		set.URLs = append(set.URLs, URL{
			Loc:        baseURL + "/blog/" + slug,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return set
}

func Write(w io.Writer, set URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
