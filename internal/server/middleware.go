package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/common/metrics"
	"healthquote-funnel/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionKey = "sessionID"

// requestLogger logs one line per request through the structured logger.
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"latency":  time.Since(start).String(),
			"clientIP": c.ClientIP(),
		}
		if sid := c.GetString(sessionKey); sid != "" {
			fields["sessionId"] = sid
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields)
		case status >= 400:
			log.Warn("request", fields)
		default:
			log.Info("request", fields)
		}
	}
}

// httpMetrics records request count and latency by matched route. Unmatched requests share one
// label so scanners cannot blow up cardinality.
func httpMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			h.Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		c.Next()
	}
}

type redirectRule struct {
	prefix string
	exact  bool
	target func(path string) string
	status int
}

func to(target string) func(string) string {
	return func(string) string { return target }
}

// legacyRules map the old WordPress paths onto the current site.
var legacyRules = []redirectRule{
	{prefix: "/wp-admin", target: to("/"), status: http.StatusFound},
	{prefix: "/wp-login.php", exact: true, target: to("/"), status: http.StatusFound},
	{prefix: "/wp-content/uploads/", target: func(p string) string {
		return "/uploads/" + strings.TrimPrefix(p, "/wp-content/uploads/")
	}, status: http.StatusMovedPermanently},
	{prefix: "/healthquotehero/", exact: true, target: to("/"), status: http.StatusMovedPermanently},
	{prefix: "/healthquotehero", exact: true, target: to("/"), status: http.StatusMovedPermanently},
	{prefix: "/feed", target: to("/"), status: http.StatusMovedPermanently},
	{prefix: "/sitemap_index.xml", exact: true, target: to("/sitemap.xml"), status: http.StatusMovedPermanently},
	{prefix: "/page-sitemap.xml", exact: true, target: to("/sitemap.xml"), status: http.StatusMovedPermanently},
}

func legacyRedirect(path string) (string, int, bool) {
	for _, r := range legacyRules {
		if r.exact && path != r.prefix {
			continue
		}
		if !r.exact && path != r.prefix && !strings.HasPrefix(path, strings.TrimSuffix(r.prefix, "/")+"/") {
			continue
		}
		return r.target(path), r.status, true
	}
	return "", 0, false
}

func legacyRedirects() gin.HandlerFunc {
	return func(c *gin.Context) {
		if target, status, ok := legacyRedirect(c.Request.URL.Path); ok {
			c.Redirect(status, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionCookie attaches the visitor's session id, issuing one when the cookie is missing or
// not a well-formed id. The cookie has no Max-Age and ends with the browser session.
func sessionCookie(name string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(name)
		if err != nil || !session.ValidID(sid) {
			sid = session.NewID()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     name,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}
