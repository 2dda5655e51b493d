package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"healthquote-funnel/internal/common/logger"
)

var pageExtensions = []string{".mdx", ".md"}

// Store holds every page from the pages directory, keyed by slug.
type Store struct {
	mu    sync.RWMutex
	dir   string
	pages map[string]*Page
	log   logger.Logger
}

func NewStore(dir string, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Store{dir: dir, pages: make(map[string]*Page), log: log}
}

// Load reads the pages directory. A missing directory yields an empty store; a page that fails
// to parse is skipped and logged.
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		s.log.Warn("content directory not found", map[string]interface{}{"dir": s.dir})
		return nil
	}
	if err != nil {
		return fmt.Errorf("read content dir: %w", err)
	}

	pages := make(map[string]*Page)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		slug, ok := slugFromFile(e.Name())
		if !ok {
			continue
		}
		src, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read %s: %w", e.Name(), err)
		}
		page, err := ParsePage(slug, src)
		if err != nil {
			s.log.Warn("skipping unparsable page", map[string]interface{}{"file": e.Name(), "error": err.Error()})
			continue
		}
		pages[page.Slug] = page
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()

	s.log.Info("content loaded", map[string]interface{}{"dir": s.dir, "pages": len(pages)})
	return nil
}

func slugFromFile(name string) (string, bool) {
	for _, ext := range pageExtensions {
		if strings.HasSuffix(name, ext) {
			slug := strings.TrimSuffix(name, ext)
			if slug == "index" {
				slug = HomeSlug
			}
			return slug, true
		}
	}
	return "", false
}

// Get returns the page for slug.
func (s *Store) Get(slug string) (*Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[slug]
	return p, ok
}

// Add registers a page, replacing any with the same slug.
func (s *Store) Add(p *Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[p.Slug] = p
}

// All returns every page, home first and then by slug.
func (s *Store) All() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Page, 0, len(s.pages))
	for _, p := range s.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}
