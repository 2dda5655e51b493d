package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	src := []byte("---\r\ntitle: \"Medicare Advantage Plans\"\r\nslug: medicare-advantage\r\ndate: \"2024-03-01\"\r\ndescription: Compare plans\r\ntype: post\r\n---\r\n# Heading\r\n\r\n| A | B |\r\n|---|---|\r\n| 1 | 2 |\r\n\r\n<div class=\"cta\">Call</div>\r\n")

	page, err := ParsePage("medicare-advantage", src)
	require.NoError(t, err)

	assert.Equal(t, "Medicare Advantage Plans", page.Title)
	assert.Equal(t, "medicare-advantage", page.Slug)
	assert.Equal(t, "post", page.Type)
	assert.Equal(t, "/medicare-advantage/", page.Path())
	assert.Contains(t, string(page.HTML), "<h1>Heading</h1>")
	assert.Contains(t, string(page.HTML), "<table>")
	assert.Contains(t, string(page.HTML), `<div class="cta">Call</div>`)
	assert.NotContains(t, page.Markdown, "title:")
}

func TestParsePage_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		fileSlug string
		src      string
		slug     string
		title    string
	}{
		{name: "no front matter", fileSlug: "contact", src: "Hello", slug: "contact", title: "contact"},
		{name: "empty front matter fields", fileSlug: "about", src: "---\ndescription: x\n---\nbody", slug: "about", title: "about"},
		{name: "home ignores slug", fileSlug: HomeSlug, src: "---\nslug: healthquotehero\ntitle: Home\n---\n", slug: HomeSlug, title: "Home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParsePage(tt.fileSlug, []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.slug, page.Slug)
			assert.Equal(t, tt.title, page.Title)
			assert.Equal(t, "page", page.Type)
		})
	}
}

func TestParsePage_BadFrontMatter(t *testing.T) {
	_, err := ParsePage("x", []byte("---\ntitle: ok\n"))
	assert.Error(t, err)

	_, err = ParsePage("x", []byte("---\ntitle: [unclosed\n---\nbody"))
	assert.Error(t, err)
}

func TestMetaPath_Home(t *testing.T) {
	assert.Equal(t, "/", Meta{Slug: HomeSlug}.Path())
}
