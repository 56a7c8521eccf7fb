// admin.go - privacy-conscious analytics and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kireistar/portfolio/internal/store"
)

const adminCookie = "admin_token"

type admin struct {
	log      zerolog.Logger
	store    *store.Store
	username string
	password string
	token    string
	salt     string
}

// newAdmin prepares the admin area. Without credentials the login only
// works in debug mode, with development defaults.
func newAdmin(log zerolog.Logger, st *store.Store, username, password string) (*admin, error) {
	token, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	if gin.Mode() == gin.DebugMode {
		if username == "" {
			username = "admin"
			log.Warn().Msg("using default admin username, set ADMIN_USERNAME")
		}
		if password == "" {
			password = "admin123"
			log.Warn().Msg("using default admin password, set ADMIN_PASSWORD")
		}
		log.Debug().Str("token", token).Msg("admin token (dev only)")
	}

	log.Info().Msg("admin access available at /admin/login, visitor tracking stores hashed IPs only")
	return &admin{log: log, store: st, username: username, password: password, token: token, salt: salt}, nil
}

func randomHex() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable per IP for the lifetime of the process.
func (a *admin) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *admin) validCredentials(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func skipTracking(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/healthz"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// visitorTracking records page views with hashed IPs. Fragment requests and
// visitors sending Do Not Track are skipped.
func (a *admin) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || skipTracking(path) ||
			c.GetHeader("DNT") == "1" || c.GetHeader("HX-Request") == "true" {
			c.Next()
			return
		}

		hashed := a.hashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		go func() {
			if err := a.store.RecordVisit(context.Background(), hashed, ua, path); err != nil {
				a.log.Error().Err(err).Msg("record visitor")
			}
		}()
		c.Next()
	}
}

// cleanup removes visitor data past the retention window.
func (a *admin) cleanup(ctx context.Context) {
	n, err := a.store.Cleanup(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("privacy cleanup")
		return
	}
	if n > 0 {
		a.log.Info().Int64("removed", n).Msg("privacy cleanup removed visitor records older than 12 months")
	}
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy", "themeClass": themeClass(c)})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			a.log.Warn().Str("client", a.hashIP(c.ClientIP())).Msg("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.token, 3600*24, "/admin", "", false, true)
		a.log.Info().Str("client", a.hashIP(c.ClientIP())).Msg("admin login")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())

	group.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			a.log.Error().Err(err).Msg("load admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": stats})
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.Visitors(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": visitors})
	})

	group.GET("/submissions", func(c *gin.Context) {
		subs, err := a.store.Submissions(c.Request.Context(), 200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Failed to load submissions"})
			return
		}
		c.HTML(http.StatusOK, "admin-submissions.html", gin.H{"submissions": subs})
	})

	group.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.cleanup(context.Background())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	group.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Info().Str("client", a.hashIP(c.ClientIP())).Msg("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})
}
