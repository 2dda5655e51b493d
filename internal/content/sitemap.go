package content

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"healthquote-funnel/pkg/registry"
)

// DefaultBaseURL is the public origin used when server.base_url is unset.
const DefaultBaseURL = "https://www.healthquotehero.com"

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// slugs rendered as core pages or retired from the site
var sitemapExcluded = map[string]bool{
	HomeSlug:           true,
	"healthquotehero":  true,
	"health-insurance": true,
	"medicare":         true,
}

// Sitemap renders sitemap.xml for the core pages followed by every indexed page.
func Sitemap(baseURL string, pages []registry.PageEntry, now time.Time) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	today := now.UTC().Format("2006-01-02")

	set := urlSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs,
		sitemapURL{Loc: base + "/", LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		sitemapURL{Loc: base + "/health-insurance/", LastMod: today, ChangeFreq: "daily", Priority: "0.95"},
		sitemapURL{Loc: base + "/medicare/", LastMod: today, ChangeFreq: "daily", Priority: "0.95"},
	)

	for _, p := range pages {
		if sitemapExcluded[p.Slug] {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + "/" + p.Slug + "/",
			LastMod:    lastMod(p.Date, today),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func lastMod(date, fallback string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return fallback
}

// Robots renders robots.txt.
func Robots(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range []string{"/api/", "/_next/", "/uploads/.tmb/"} {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + base + "/sitemap.xml\n")
	return b.String()
}

// Index builds the page index from the store. The home page is not listed.
func Index(store *Store) *registry.PagesIndex {
	idx := &registry.PagesIndex{Version: registry.IndexVersion}
	for _, p := range store.All() {
		if p.Slug == HomeSlug {
			continue
		}
		idx.Upsert(EntryFor(p.Meta))
	}
	return idx
}

func EntryFor(m Meta) registry.PageEntry {
	return registry.PageEntry{
		Slug:        m.Slug,
		Title:       m.Title,
		Type:        m.Type,
		Date:        m.Date,
		Description: m.Description,
		Canonical:   m.Canonical,
	}
}
