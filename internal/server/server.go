// Package server is the funnel's HTTP front end: the wizard step routes, content and landing
// pages, the thank-you page, the JSON API, sitemap and robots, and the health and metrics
// endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/observability"
	"healthquote-funnel/internal/content"
	contentsearch "healthquote-funnel/internal/endpoints/content/content-search"
	arrivalcreate "healthquote-funnel/internal/endpoints/lead/arrival-create"
	leadsubmit "healthquote-funnel/internal/endpoints/lead/lead-submit"
	offersfetch "healthquote-funnel/internal/endpoints/lead/offers-fetch"
	geocodelookup "healthquote-funnel/internal/endpoints/location/geocode-lookup"
	"healthquote-funnel/internal/session"
	"healthquote-funnel/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck is one dependency probed by /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies are the collaborators the server routes to. Handlers left nil have their API
// route answer 503.
type Dependencies struct {
	Config        *config.Config
	Logger        logger.Logger
	Cache         session.Cache
	Content       *content.Store
	Navigation    *content.Navigation
	Observability *observability.Observability

	Arrivals *arrivalcreate.Handler
	Leads    *leadsubmit.Handler
	Offers   *offersfetch.Handler
	Geocode  *geocodelookup.Handler
	Search   *contentsearch.Handler

	Readiness []ReadinessCheck
}

type Server struct {
	cfg       *config.Config
	log       logger.Logger
	deps      Dependencies
	router    *gin.Engine
	templates *template.Template
	tracker   *wizard.ArrivalTracker
	submitter *wizard.Submitter
	now       func() time.Time
}

func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Cache == nil {
		return nil, errors.New("server: session cache is required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNoOpLogger()
	}
	if deps.Content == nil {
		deps.Content = content.NewStore("", deps.Logger)
	}
	if deps.Navigation == nil {
		deps.Navigation = content.DefaultNavigation()
	}

	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		cfg:       deps.Config,
		log:       deps.Logger.WithFields(map[string]interface{}{"component": "server"}),
		deps:      deps,
		templates: tmpl,
		now:       time.Now,
	}

	var registrar wizard.ArrivalRegistrar
	arrivalTimeout := 30 * time.Second
	if deps.Arrivals != nil {
		registrar = deps.Arrivals
		arrivalTimeout = deps.Arrivals.GetConfig().Timeout
	}
	if registrar != nil {
		s.tracker = wizard.NewArrivalTracker(registrar, deps.Cache, arrivalTimeout, s.log)
	}
	if deps.Leads != nil {
		s.submitter = wizard.NewSubmitter(deps.Leads, s.tracker, deps.Cache, 60*time.Second, s.log)
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(s.templates)
	r.Use(gin.Recovery(), requestLogger(s.log), httpMetrics(), securityHeaders(), legacyRedirects())

	r.GET("/health", s.handleHealth)
	r.GET("/ready", s.handleReady)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/sitemap.xml", s.handleSitemap)
	r.GET("/robots.txt", s.handleRobots)
	r.Static("/uploads", s.cfg.Server.UploadsDir)

	api := r.Group("/api")
	{
		api.POST("/lead/arrival", s.endpoint(s.deps.Arrivals != nil, func(c *gin.Context) { s.deps.Arrivals.Handle(c) }))
		api.POST("/lead/submit", s.endpoint(s.deps.Leads != nil, func(c *gin.Context) { s.deps.Leads.Handle(c) }))
		api.GET("/lead/offers", s.endpoint(s.deps.Offers != nil, func(c *gin.Context) { s.deps.Offers.Handle(c) }))
		api.GET("/geocode", s.endpoint(s.deps.Geocode != nil, func(c *gin.Context) { s.deps.Geocode.Handle(c) }))
		api.POST("/geocode", s.endpoint(s.deps.Geocode != nil, func(c *gin.Context) { s.deps.Geocode.Handle(c) }))
		api.GET("/search", s.endpoint(s.deps.Search != nil, func(c *gin.Context) { s.deps.Search.Handle(c) }))
	}

	cookie := sessionCookie(s.cfg.Session.CookieName, s.cfg.Session.Secure)
	r.GET("/", s.handleHome)
	r.GET("/:slug/", cookie, s.handleSlug)
	r.POST("/:slug/", cookie, s.handleSlugPost)

	r.NoRoute(s.handleNotFound)
	return r
}

// endpoint answers 503 for an API route whose handler is not configured.
func (s *Server) endpoint(enabled bool, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Service unavailable"})
			return
		}
		h(c)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains requests and in-flight arrival registrations.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Address,
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(s.cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if s.tracker != nil {
		s.tracker.Wait()
	}
	return err
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for _, rc := range s.deps.Readiness {
		if err := rc.Check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[rc.Name] = err.Error()
			continue
		}
		checks[rc.Name] = "ok"
	}

	body := gin.H{"status": "ready", "checks": checks, "time": s.now().Format(time.RFC3339)}
	if status != http.StatusOK {
		body["status"] = "not ready"
	}
	c.JSON(status, body)
}
