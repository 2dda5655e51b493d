// pkg/registry/schema.go
package registry

// IndexVersion is written by the content indexer.
const IndexVersion = "1.0"

type PagesIndex struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Pages       []PageEntry `json:"pages"`
}

type PageEntry struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
}
