// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

func LoadIndex(path string) (*PagesIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var idx PagesIndex
	err = json.Unmarshal(data, &idx)
	return &idx, err
}

// SaveIndex stamps lastUpdated, sorts pages by slug and writes the index as indented JSON.
func SaveIndex(path string, idx *PagesIndex) error {
	if idx.Version == "" {
		idx.Version = IndexVersion
	}
	idx.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	sort.Slice(idx.Pages, func(i, j int) bool { return idx.Pages[i].Slug < idx.Pages[j].Slug })

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Upsert replaces the entry with the same slug or appends it. It reports whether the entry was new.
func (idx *PagesIndex) Upsert(entry PageEntry) bool {
	for i := range idx.Pages {
		if idx.Pages[i].Slug == entry.Slug {
			idx.Pages[i] = entry
			return false
		}
	}
	idx.Pages = append(idx.Pages, entry)
	return true
}

func (idx *PagesIndex) Find(slug string) (PageEntry, bool) {
	for _, p := range idx.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return PageEntry{}, false
}

// Validate returns one message per problem found: empty titles, duplicate slugs, and slugs
// containing slashes or whitespace.
func (idx *PagesIndex) Validate() []string {
	var problems []string
	seen := make(map[string]bool, len(idx.Pages))
	for i, p := range idx.Pages {
		if p.Slug == "" {
			problems = append(problems, fmt.Sprintf("pages[%d]: empty slug", i))
			continue
		}
		if strings.ContainsAny(p.Slug, "/ \t") {
			problems = append(problems, fmt.Sprintf("%s: invalid slug", p.Slug))
		}
		if seen[p.Slug] {
			problems = append(problems, fmt.Sprintf("%s: duplicate slug", p.Slug))
		}
		seen[p.Slug] = true
		if p.Title == "" {
			problems = append(problems, fmt.Sprintf("%s: missing title", p.Slug))
		}
	}
	return problems
}
