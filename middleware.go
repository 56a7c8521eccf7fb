package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kireistar/portfolio/internal/session"
	"github.com/kireistar/portfolio/internal/theme"
)

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = log.Error()
		case status >= http.StatusBadRequest:
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Bool("htmx", c.GetHeader("HX-Request") == "true").
			Msg("request")
	}
}

// sessionMiddleware attaches the visitor's session, creating it on first visit.
func (s *server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(session.CookieName)
		sess := s.sessions.Open(id)
		if sess.ID != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(session.CookieName, sess.ID, 0, "/", "", false, true)
		}
		c.Set(ctxSession, sess)
		c.Next()
	}
}

// themeMiddleware resolves the visitor's theme and installs the page marker
// for the lifetime of the request.
func themeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Accept-CH", theme.HintHeader)
		c.Writer.Header().Add("Vary", theme.HintHeader)

		pref := theme.NewPreference(theme.NewCookieStore(c), theme.ClientHint{Header: c.Request.Header})
		ctx, teardown := theme.WithMarker(c.Request.Context(), pref.Choice())
		defer teardown()

		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxTheme, pref)
		c.Next()
	}
}
