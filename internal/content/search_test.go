package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthquote-funnel/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchStore() *Store {
	store := NewStore("", nil)
	store.Add(&Page{Meta: Meta{Slug: "medicare-advantage", Title: "Medicare Advantage Explained", Description: "Part C plans"}})
	store.Add(&Page{Meta: Meta{Slug: "part-d", Title: "Drug Coverage", Description: "Medicare Part D basics"}})
	store.Add(&Page{Meta: Meta{Slug: "aca", Title: "ACA Marketplace", Description: "Open enrollment"}})
	return store
}

// ==========================
// Memory search
// ==========================

func TestMemorySearcher(t *testing.T) {
	s := NewMemorySearcher(searchStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		size  int
		slugs []string
	}{
		{name: "title before description", query: "MEDICARE", slugs: []string{"medicare-advantage", "part-d"}},
		{name: "description only", query: "enrollment", slugs: []string{"aca"}},
		{name: "size limit", query: "medicare", size: 1, slugs: []string{"medicare-advantage"}},
		{name: "no match", query: "dental", slugs: []string{}},
		{name: "blank", query: "  ", slugs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := s.Search(ctx, tt.query, tt.size)
			require.NoError(t, err)
			slugs := make([]string, 0, len(hits))
			for _, h := range hits {
				slugs = append(slugs, h.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, defaultSearchSize, clampSize(0))
	assert.Equal(t, 5, clampSize(5))
	assert.Equal(t, maxSearchSize, clampSize(500))
}

// ==========================
// Elasticsearch
// ==========================

type esRecorder struct {
	method string
	path   string
	body   map[string]interface{}
}

func newESServer(t *testing.T, status int, response string, rec *esRecorder) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticSearcher_Search(t *testing.T) {
	rec := &esRecorder{}
	client := newESServer(t, http.StatusOK, `{
		"took": 3,
		"hits": {
			"total": {"value": 1, "relation": "eq"},
			"max_score": 4.2,
			"hits": [
				{"_id": "part-d", "_score": 4.2, "_source": {"slug": "part-d", "title": "Drug Coverage", "description": "Part D", "url": "/part-d/"}}
			]
		}
	}`, rec)

	s := NewElasticSearcher(client, "", logger.NewTestLogger(t))
	hits, err := s.Search(context.Background(), "drug", 0)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Slug: "part-d", Title: "Drug Coverage", Description: "Part D", URL: "/part-d/", Score: 4.2}, hits[0])

	assert.Equal(t, "/content_pages/_search", rec.path)
	assert.Equal(t, float64(defaultSearchSize), rec.body["size"])
	match := rec.body["query"].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "drug", match["query"])
}

func TestElasticSearcher_SearchError(t *testing.T) {
	rec := &esRecorder{}
	client := newESServer(t, http.StatusBadRequest, `{"error": {"type": "index_not_found_exception"}}`, rec)

	s := NewElasticSearcher(client, "pages", nil)
	_, err := s.Search(context.Background(), "drug", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search query failed")
	assert.Equal(t, "/pages/_search", rec.path)
}

func TestElasticSearcher_BlankQuerySkipsRequest(t *testing.T) {
	rec := &esRecorder{}
	client := newESServer(t, http.StatusOK, `{}`, rec)

	hits, err := NewElasticSearcher(client, "", nil).Search(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Empty(t, rec.path)
}

func TestElasticSearcher_IndexPage(t *testing.T) {
	rec := &esRecorder{}
	client := newESServer(t, http.StatusCreated, `{"result": "created"}`, rec)
	s := NewElasticSearcher(client, "", nil)

	err := s.IndexPage(context.Background(), &Page{Meta: Meta{Slug: HomeSlug, Title: "Home", Type: "page"}, Markdown: "Welcome"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/content_pages/_doc/index", rec.path)
	assert.Equal(t, "/", rec.body["url"])
	assert.Equal(t, "Welcome", rec.body["body"])
}

func TestElasticSearcher_EnsureIndexExisting(t *testing.T) {
	rec := &esRecorder{}
	client := newESServer(t, http.StatusOK, ``, rec)

	require.NoError(t, NewElasticSearcher(client, "", nil).EnsureIndex(context.Background()))
	assert.Equal(t, http.MethodHead, rec.method)
}
