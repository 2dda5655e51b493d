package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"healthquote-funnel/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultPagesIndex = "content_pages"
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// Hit is one search result.
type Hit struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Score       float64 `json:"score,omitempty"`
}

type Searcher interface {
	Search(ctx context.Context, query string, size int) ([]Hit, error)
}

func clampSize(size int) int {
	if size < 1 {
		return defaultSearchSize
	}
	if size > maxSearchSize {
		return maxSearchSize
	}
	return size
}

// MemorySearcher matches the query case-insensitively against page titles and descriptions.
// Title matches rank ahead of description matches.
type MemorySearcher struct {
	store *Store
}

func NewMemorySearcher(store *Store) *MemorySearcher {
	return &MemorySearcher{store: store}
}

func (m *MemorySearcher) Search(_ context.Context, query string, size int) ([]Hit, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Hit{}, nil
	}
	size = clampSize(size)

	var titled, described []Hit
	for _, p := range m.store.All() {
		hit := Hit{Slug: p.Slug, Title: p.Title, Description: p.Description, URL: p.Path()}
		switch {
		case strings.Contains(strings.ToLower(p.Title), q):
			hit.Score = 2
			titled = append(titled, hit)
		case strings.Contains(strings.ToLower(p.Description), q):
			hit.Score = 1
			described = append(described, hit)
		}
	}

	hits := append(titled, described...)
	if len(hits) > size {
		hits = hits[:size]
	}
	if hits == nil {
		hits = []Hit{}
	}
	return hits, nil
}

// pageDocument is the shape stored in the pages index.
type pageDocument struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Date        string `json:"date,omitempty"`
	URL         string `json:"url"`
	Body        string `json:"body"`
}

const pagesMapping = `{
  "mappings": {
    "properties": {
      "slug": {"type": "keyword"},
      "title": {"type": "text"},
      "description": {"type": "text"},
      "type": {"type": "keyword"},
      "date": {"type": "keyword"},
      "url": {"type": "keyword"},
      "body": {"type": "text"}
    }
  }
}`

// ElasticSearcher queries and fills the pages index.
type ElasticSearcher struct {
	client *elasticsearch.Client
	index  string
	log    logger.Logger
}

func NewElasticSearcher(client *elasticsearch.Client, index string, log logger.Logger) *ElasticSearcher {
	if index == "" {
		index = DefaultPagesIndex
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ElasticSearcher{client: client, index: index, log: log}
}

func (e *ElasticSearcher) Search(ctx context.Context, query string, size int) ([]Hit, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []Hit{}, nil
	}

	body := map[string]interface{}{
		"size": clampSize(size),
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"title^3", "description^2", "body"},
			},
		},
		"_source": []string{"slug", "title", "description", "url"},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  &buf,
	}

	start := time.Now()
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Score  float64      `json:"_score"`
				Source pageDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		hits = append(hits, Hit{
			Slug:        h.Source.Slug,
			Title:       h.Source.Title,
			Description: h.Source.Description,
			URL:         h.Source.URL,
			Score:       h.Score,
		})
	}

	e.log.Debug("search completed", map[string]interface{}{
		"query":    q,
		"hits":     len(hits),
		"duration": time.Since(start).Milliseconds(),
	})
	return hits, nil
}

// EnsureIndex creates the pages index with its mapping if it does not exist.
func (e *ElasticSearcher) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{e.index}}.Do(ctx, e.client)
	if err != nil {
		return err
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{
		Index: e.index,
		Body:  strings.NewReader(pagesMapping),
	}.Do(ctx, e.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", e.index, res.String())
	}
	return nil
}

// IndexPage writes one page document, keyed by slug. The home page is stored as "index".
func (e *ElasticSearcher) IndexPage(ctx context.Context, p *Page) error {
	doc := pageDocument{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		Date:        p.Date,
		URL:         p.Path(),
		Body:        p.Markdown,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	id := p.Slug
	if id == HomeSlug {
		id = "index"
	}

	res, err := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
	}.Do(ctx, e.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index page %s: %s", id, res.String())
	}
	return nil
}
