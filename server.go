package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/kireistar/portfolio/internal/clipboard"
	"github.com/kireistar/portfolio/internal/contact"
	"github.com/kireistar/portfolio/internal/nav"
	"github.com/kireistar/portfolio/internal/session"
	"github.com/kireistar/portfolio/internal/store"
	"github.com/kireistar/portfolio/internal/theme"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	ctxSession = "session"
	ctxTheme   = "theme"
)

type server struct {
	log      zerolog.Logger
	store    *store.Store
	sessions *session.Registry
	nav      *nav.Navigator
	admin    *admin
}

func newServer(log zerolog.Logger, st *store.Store, relay contact.Relay, adm *admin, clock clockwork.Clock, ttl time.Duration) *server {
	s := &server{
		log:   log,
		store: st,
		nav:   nav.New(nav.DefaultAnchors...),
		admin: adm,
	}
	s.sessions = session.NewRegistry(func(id string) *session.Session {
		return &session.Session{
			Contact: contact.NewSubmitter(relay,
				contact.WithClock(clock),
				contact.WithObserver(s.submissionObserver(id))),
			Clipboard: clipboard.NewNotifier(nil, clipboard.WithClock(clock)),
		}
	}, session.WithClock(clock), session.WithTTL(ttl))
	return s
}

// submissionObserver logs every transition and records finished submissions.
func (s *server) submissionObserver(sessionID string) contact.Observer {
	log := s.log.With().Str("session", sessionID).Logger()
	return func(st contact.Status) {
		log.Debug().Str("state", st.State.String()).Msg("contact form transition")

		if st.State != contact.StateSucceeded && st.State != contact.StateFailed {
			return
		}
		if st.State == contact.StateFailed {
			log.Warn().Str("reason", st.Reason).Msg("contact submission failed")
		} else {
			log.Info().Msg("contact submission relayed")
		}
		if s.store == nil {
			return
		}
		if err := s.store.RecordSubmission(context.Background(), st.State.String(), st.Reason); err != nil {
			log.Error().Err(err).Msg("record submission")
		}
	}
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"date": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(parseTemplates())
	r.Use(requestLogger(s.log), gin.Recovery())
	if s.admin != nil {
		r.Use(s.admin.visitorTracking())
	}
	r.Use(s.sessionMiddleware(), themeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})

	r.GET("/", s.home)

	r.POST("/contact", s.submitContact)
	r.GET("/contact/status", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact-status.html", currentSession(c).Contact.Status())
	})

	r.POST("/theme", s.toggleTheme)

	r.POST("/clipboard", s.recordCopy)
	r.GET("/clipboard/status", func(c *gin.Context) {
		c.HTML(http.StatusOK, "clipboard-status.html", gin.H{"status": currentSession(c).Clipboard.Status()})
	})

	r.POST("/nav/:section", s.scrollTo)

	if s.admin != nil {
		s.admin.routes(r)
	}
	return r
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(ctxSession).(*session.Session)
}

func currentTheme(c *gin.Context) *theme.Preference {
	return c.MustGet(ctxTheme).(*theme.Preference)
}

func themeClass(c *gin.Context) string {
	if m, ok := theme.MarkerFrom(c.Request.Context()); ok {
		return m.Class()
	}
	return ""
}

// contactView is what the contact form fragment renders.
type contactView struct {
	Values contact.Message
	Status contact.Status
	Error  string
}

// SendingText is shown by htmx while the POST is still in flight.
func (contactView) SendingText() string { return contact.TextSending }

// htmlForm is the server-side copy of the form fields; Reset empties the
// fragment that gets swapped back into the page.
type htmlForm struct {
	values contact.Message
}

func (f *htmlForm) Reset() { f.values = contact.Message{} }

func (s *server) home(c *gin.Context) {
	sess := currentSession(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"brand":        Brand,
		"tagline":      Tagline,
		"aboutMe":      AboutMe,
		"projects":     Projects,
		"techStack":    TechStack,
		"hardSkills":   HardSkills,
		"softSkills":   SoftSkills,
		"achievements": Achievements,
		"socialLinks":  SocialLinks,
		"navItems":     s.nav.Items(),
		"themeClass":   themeClass(c),
		"dark":         currentTheme(c).Choice() == theme.Dark,
		"address":      clipboard.Address,
		"copy":         gin.H{"status": sess.Clipboard.Status()},
		"contact":      contactView{Status: sess.Contact.Status()},
	})
}

func (s *server) submitContact(c *gin.Context) {
	sess := currentSession(c)

	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-form.html", contactView{
			Values: msg,
			Status: sess.Contact.Status(),
			Error:  "Please fill in every field with a valid email address.",
		})
		return
	}

	form := &htmlForm{values: msg}
	// Once sent, a submission runs to completion even if the visitor leaves.
	ctx := context.WithoutCancel(c.Request.Context())

	status, err := sess.Contact.Submit(ctx, msg, form)
	if errors.Is(err, contact.ErrInFlight) {
		c.HTML(http.StatusConflict, "contact-form.html", contactView{Values: msg, Status: status})
		return
	}

	c.HTML(http.StatusOK, "contact-form.html", contactView{Values: form.values, Status: status})
}

func (s *server) toggleTheme(c *gin.Context) {
	choice, err := currentTheme(c).Toggle()
	if err != nil {
		s.log.Warn().Err(err).Msg("persist theme")
	}

	trigger, _ := json.Marshal(map[string]any{
		"themeChanged": map[string]string{"theme": string(choice)},
	})
	c.Header("HX-Trigger", string(trigger))
	c.HTML(http.StatusOK, "theme-toggle.html", gin.H{"dark": choice == theme.Dark})
}

// recordCopy stores the outcome of the browser's clipboard write.
func (s *server) recordCopy(c *gin.Context) {
	var err error
	if c.PostForm("outcome") != "copied" {
		err = clipboard.ErrDenied
	}
	status := currentSession(c).Clipboard.Record(err)
	c.HTML(http.StatusOK, "clipboard-status.html", gin.H{"status": status})
}

func (s *server) scrollTo(c *gin.Context) {
	action, ok := s.nav.ScrollTo(c.Param("section"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	trigger, _ := json.Marshal(map[string]nav.Action{"scrollTo": action})
	c.Header("HX-Trigger", string(trigger))
	c.Status(http.StatusOK)
}
