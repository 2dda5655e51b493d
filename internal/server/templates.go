package server

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"healthquote-funnel/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
	"money": func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("$%.0f", *v)
	},
	"percent": func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.0f%%", *v)
	},
	"lower": strings.ToLower,
}

func loadTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// layout carries what every page template needs.
type layout struct {
	Title       string
	Description string
	Canonical   string
	Nav         *content.Navigation
	JornayaURL  string
	NoIndex     bool
}

func (s *Server) layout(title, description, path string) layout {
	return layout{
		Title:       title,
		Description: description,
		Canonical:   s.cfg.Server.BaseURL + path,
		Nav:         s.deps.Navigation,
	}
}

// jornayaURL is the LeadiD campaign script, or "" when no campaign is configured.
func jornayaURL(campaignID string) string {
	if campaignID == "" {
		return ""
	}
	return "https://create.lidstatic.com/campaign/" + campaignID + ".js?snippet_version=2"
}
