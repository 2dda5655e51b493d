// Package content loads the site's Markdown pages, navigation and page index, and serves the
// sitemap, robots file and site search built from them.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Meta is a page's front matter.
type Meta struct {
	Title         string `yaml:"title" json:"title"`
	Slug          string `yaml:"slug" json:"slug"`
	Date          string `yaml:"date" json:"date"`
	Description   string `yaml:"description" json:"description"`
	Canonical     string `yaml:"canonical" json:"canonical"`
	Type          string `yaml:"type" json:"type"`
	FeaturedImage string `yaml:"featuredImage,omitempty" json:"featuredImage,omitempty"`
}

// Page is a parsed content file.
type Page struct {
	Meta
	Markdown string
	HTML     template.HTML
}

// HomeSlug is the slug of the home page, stored as index.md.
const HomeSlug = ""

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// migrated pages carry inline HTML
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ParsePage splits front matter from body and renders the body. fileSlug is the slug implied by
// the file name and is used when the front matter has none.
func ParsePage(fileSlug string, src []byte) (*Page, error) {
	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", fileSlug, err)
	}

	if meta.Slug == "" || fileSlug == HomeSlug {
		meta.Slug = fileSlug
	}
	if meta.Title == "" {
		meta.Title = fileSlug
	}
	if meta.Type == "" {
		meta.Type = "page"
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("page %q: render markdown: %w", fileSlug, err)
	}

	return &Page{
		Meta:     meta,
		Markdown: string(body),
		HTML:     template.HTML(buf.String()),
	}, nil
}

func splitFrontMatter(src []byte) (Meta, []byte, error) {
	var meta Meta
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return meta, []byte(text), nil
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return meta, nil, fmt.Errorf("unterminated front matter")
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return meta, nil, fmt.Errorf("front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return meta, []byte(body), nil
}

// Path is the canonical site path for a page.
func (m Meta) Path() string {
	if m.Slug == HomeSlug {
		return "/"
	}
	return "/" + m.Slug + "/"
}
