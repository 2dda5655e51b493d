package content

import (
	"encoding/xml"
	"testing"
	"time"

	"healthquote-funnel/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	pages := []registry.PageEntry{
		{Slug: "medicare", Title: "Medicare"},
		{Slug: "healthquotehero", Title: "Old Home"},
		{Slug: "contact", Title: "Contact"},
		{Slug: "aca-guide", Title: "ACA Guide", Date: "2024-03-01T10:00:00"},
	}

	out, err := Sitemap("https://example.com/", pages, now)
	require.NoError(t, err)

	var set urlSet
	require.NoError(t, xml.Unmarshal(out, &set))
	require.Len(t, set.URLs, 5)

	assert.Equal(t, sitemapURL{Loc: "https://example.com/", LastMod: "2026-06-15", ChangeFreq: "daily", Priority: "1.0"}, set.URLs[0])
	assert.Equal(t, "https://example.com/health-insurance/", set.URLs[1].Loc)
	assert.Equal(t, "0.95", set.URLs[1].Priority)
	assert.Equal(t, "daily", set.URLs[2].ChangeFreq)
	assert.Equal(t, sitemapURL{Loc: "https://example.com/contact/", LastMod: "2026-06-15", ChangeFreq: "weekly", Priority: "0.7"}, set.URLs[3])
	assert.Equal(t, "2024-03-01", set.URLs[4].LastMod)
	assert.Contains(t, string(out), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}

func TestSitemap_DefaultBase(t *testing.T) {
	out, err := Sitemap("", nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(out), "<loc>https://www.healthquotehero.com/</loc>")
}

func TestRobots(t *testing.T) {
	want := "User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /_next/\nDisallow: /uploads/.tmb/\n\nSitemap: https://example.com/sitemap.xml\n"
	assert.Equal(t, want, Robots("https://example.com"))
}

func TestIndex(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	store.Add(&Page{Meta: Meta{Slug: HomeSlug, Title: "Home", Type: "page"}})
	store.Add(&Page{Meta: Meta{Slug: "contact", Title: "Contact", Type: "page", Description: "Reach us"}})

	idx := Index(store)
	require.Len(t, idx.Pages, 1)
	assert.Equal(t, registry.PageEntry{Slug: "contact", Title: "Contact", Type: "page", Description: "Reach us"}, idx.Pages[0])
	assert.Empty(t, idx.Validate())
}
