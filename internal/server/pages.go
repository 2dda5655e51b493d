package server

import (
	"html/template"
	"net/http"
	"os"

	apperrors "healthquote-funnel/internal/common/errors"
	"healthquote-funnel/internal/content"
	offersfetch "healthquote-funnel/internal/endpoints/lead/offers-fetch"
	"healthquote-funnel/internal/models"
	"healthquote-funnel/internal/wizard"
	"healthquote-funnel/pkg/registry"

	"github.com/gin-gonic/gin"
)

type pageView struct {
	layout
	Heading string
	Body    template.HTML
	Date    string
	Landing *landingView
}

// landingView is the ZIP entry box that starts a funnel.
type landingView struct {
	FormType string
	Action   string
	Heading  string
	Button   string
}

type thankYouView struct {
	layout
	Heading     string
	Subheading  string
	Offers      []models.Offer
	OffersError bool
}

var landings = map[string]*wizard.Variant{
	"health-insurance": wizard.Health(),
	"medicare":         wizard.Medicare(),
}

var fallbackPages = map[string]content.Meta{
	content.HomeSlug: {
		Title:       "Health Quote Hero | Compare Health Insurance & Medicare Quotes",
		Description: "Compare health insurance and Medicare plans from top carriers. Free quotes in minutes.",
	},
	"health-insurance": {
		Title:       "Affordable Health Insurance Plans | Compare & Save",
		Description: "Compare affordable health insurance plans from top carriers. Free quotes, no obligation.",
	},
	"medicare": {
		Title:       "Medicare Plans | Compare Medicare Advantage & Supplement Quotes",
		Description: "Compare Medicare Advantage, Supplement and Part D plans available in your area.",
	},
}

func (s *Server) handleHome(c *gin.Context) {
	s.renderPage(c, content.HomeSlug)
}

// handleSlug dispatches the single-segment routes: wizard steps, the thank-you page, landing
// pages and content pages.
func (s *Server) handleSlug(c *gin.Context) {
	slug := c.Param("slug")
	if v, step, ok := wizard.ParseRoute(slug); ok {
		s.showWizard(c, v, step)
		return
	}
	if slug == "thank-you" {
		s.handleThankYou(c)
		return
	}
	s.renderPage(c, slug)
}

func (s *Server) handleSlugPost(c *gin.Context) {
	v, step, ok := wizard.ParseRoute(c.Param("slug"))
	if !ok {
		s.handleNotFound(c)
		return
	}
	s.postWizard(c, v, step)
}

func (s *Server) renderPage(c *gin.Context, slug string) {
	view := pageView{}
	page, found := s.deps.Content.Get(slug)
	if found {
		view.layout = s.layout(page.Title, page.Description, page.Path())
		if page.Canonical != "" {
			view.Canonical = page.Canonical
		}
		view.Heading = page.Title
		view.Body = page.HTML
		view.Date = page.Date
	} else {
		meta, core := fallbackPages[slug]
		if !core {
			s.log.Debug("page not found", map[string]interface{}{
				"error": apperrors.NewContentNotFoundError(slug).Error(),
			})
			s.handleNotFound(c)
			return
		}
		meta.Slug = slug
		view.layout = s.layout(meta.Title, meta.Description, meta.Path())
		view.Heading = meta.Title
	}

	if v, ok := landings[slug]; ok {
		view.Landing = &landingView{
			FormType: string(v.FormType),
			Action:   v.Route(1),
			Heading:  "Get Your Free " + v.FormType.Label() + " Quote",
			Button:   "Compare Plans",
		}
	}
	if slug == content.HomeSlug {
		view.Landing = &landingView{
			FormType: string(models.FormTypeHealth),
			Action:   wizard.Health().Route(1),
			Heading:  "Find Affordable Coverage Near You",
			Button:   "Get Quotes",
		}
	}

	c.HTML(http.StatusOK, "page", view)
}

// handleThankYou renders the offers for a completed submission. Offer failures are shown as a
// friendly note; the visitor's lead is already delivered.
func (s *Server) handleThankYou(c *gin.Context) {
	formType := offersfetch.NormalizeFormType(c.Query("type"))
	city := c.DefaultQuery("city", "")
	if city == "" {
		city = "Your City"
	}
	state := c.DefaultQuery("state", "")
	if state == "" {
		state = "Your State"
	}

	view := thankYouView{
		layout:     s.layout("Thank You | Health Quote Hero", "", "/thank-you/"),
		Heading:    "Your " + formType.Label() + " Quotes for " + city + ", " + state,
		Subheading: "Insurance professionals will be reaching out to you shortly.",
	}
	view.NoIndex = true

	if s.deps.Offers == nil {
		view.OffersError = true
	} else {
		out, err := s.deps.Offers.Execute(c.Request.Context(), &offersfetch.Input{
			ArrivalID: c.Query("arrivalId"),
			FormType:  formType,
		})
		if err != nil {
			s.log.Warn("thank-you offers unavailable", map[string]interface{}{"error": err.Error()})
			view.OffersError = true
		} else {
			view.Offers = out.Offers
		}
	}

	c.HTML(http.StatusOK, "thankyou", view)
}

func (s *Server) handleNotFound(c *gin.Context) {
	view := pageView{
		layout:  s.layout("Page Not Found | Health Quote Hero", "", c.Request.URL.Path),
		Heading: "Page Not Found",
	}
	view.NoIndex = true
	c.HTML(http.StatusNotFound, "notfound", view)
}

// handleSitemap prefers the page index written by the content indexer and falls back to the
// loaded pages.
func (s *Server) handleSitemap(c *gin.Context) {
	var entries []registry.PageEntry
	idx, err := registry.LoadIndex(s.cfg.Content.IndexPath)
	switch {
	case err == nil:
		entries = idx.Pages
	case os.IsNotExist(err):
		entries = content.Index(s.deps.Content).Pages
	default:
		s.log.Warn("page index unreadable, using loaded pages", map[string]interface{}{"error": err.Error()})
		entries = content.Index(s.deps.Content).Pages
	}

	body, err := content.Sitemap(s.cfg.Server.BaseURL, entries, s.now())
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (s *Server) handleRobots(c *gin.Context) {
	c.String(http.StatusOK, content.Robots(s.cfg.Server.BaseURL))
}
