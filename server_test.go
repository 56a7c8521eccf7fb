package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kireistar/portfolio/internal/clipboard"
	"github.com/kireistar/portfolio/internal/contact"
	"github.com/kireistar/portfolio/internal/store"
	"github.com/kireistar/portfolio/internal/theme"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type recordingRelay struct {
	mu      sync.Mutex
	err     error
	sent    []contact.Message
	started chan struct{}
	release chan struct{}
}

func (r *recordingRelay) Send(ctx context.Context, msg contact.Message) error {
	r.mu.Lock()
	r.sent = append(r.sent, msg)
	err := r.err
	r.mu.Unlock()
	if r.started != nil {
		r.started <- struct{}{}
		<-r.release
	}
	return err
}

type testEnv struct {
	handler http.Handler
	clock   *clockwork.FakeClock
	relay   *recordingRelay
	store   *store.Store
	cookies map[string]*http.Cookie
}

func newTestEnv(t *testing.T, relay *recordingRelay) *testEnv {
	t.Helper()

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	adm, err := newAdmin(zerolog.Nop(), st, "bintang", "s3cret")
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	srv := newServer(zerolog.Nop(), st, relay, adm, clock, time.Hour)

	return &testEnv{
		handler: srv.routes(),
		clock:   clock,
		relay:   relay,
		store:   st,
		cookies: map[string]*http.Cookie{},
	}
}

// do sends req with every cookie collected so far, like a browser would.
func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return e.do(req)
}

var adaForm = url.Values{
	"name":    {"Ada"},
	"email":   {"ada@example.com"},
	"subject": {"Hi"},
	"message": {"Hello"},
}

func TestHomeRendersSections(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(theme.HintHeader, "dark")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, id := range []string{"home", "about", "projects", "contact"} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `<html lang="en" class="dark">`)
	assert.Contains(t, body, "Neural Vision System")
	assert.Equal(t, theme.HintHeader, w.Header().Get("Accept-CH"))
	assert.Contains(t, env.cookies, "sid")
}

func TestContactSubmissionScenario(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})
	env.get("/")

	w := env.post("/contact", adaForm)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Form Submitted Successfully...")
	assert.NotContains(t, body, `value="Ada"`)
	assert.NotContains(t, body, "Hello</textarea>")
	assert.Equal(t, []contact.Message{{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Body: "Hello"}}, env.relay.sent)

	status := env.get("/contact/status")
	assert.Contains(t, status.Body.String(), "Form Submitted Successfully...")

	env.clock.Advance(contact.DefaultResetAfter)
	assert.Eventually(t, func() bool {
		return !strings.Contains(env.get("/contact/status").Body.String(), "Form Submitted")
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		subs, err := env.store.Submissions(context.Background(), 10)
		return err == nil && len(subs) == 1 && subs[0].State == "succeeded"
	}, time.Second, 5*time.Millisecond)
}

func TestContactRejectedKeepsFields(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{err: &contact.RejectedError{StatusCode: 200, Message: "X"}})

	w := env.post("/contact", adaForm)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `>X</p>`)
	assert.Contains(t, body, `value="Ada"`)
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	form := url.Values{"name": {"Ada"}, "email": {"not-an-email"}, "subject": {"Hi"}, "message": {"Hello"}}
	w := env.post("/contact", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "valid email address")
	assert.Empty(t, env.relay.sent)
}

func TestContactRejectsSecondSubmissionWhileSending(t *testing.T) {
	relay := &recordingRelay{started: make(chan struct{}), release: make(chan struct{})}
	env := newTestEnv(t, relay)
	env.get("/")

	done := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(adaForm.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(env.cookies["sid"])
		w := httptest.NewRecorder()
		env.handler.ServeHTTP(w, req)
		done <- w.Code
	}()
	<-relay.started

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(adaForm.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(env.cookies["sid"])
	w := httptest.NewRecorder()
	env.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
	assert.Contains(t, w.Body.String(), contact.TextSending)

	close(relay.release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestThemeToggleOverridesHint(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	req := httptest.NewRequest(http.MethodPost, "/theme", nil)
	req.Header.Set(theme.HintHeader, "dark")
	w := env.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("HX-Trigger"), `"theme":"light"`)
	require.Contains(t, env.cookies, theme.Key)
	assert.Equal(t, "light", env.cookies[theme.Key].Value)

	reload := httptest.NewRequest(http.MethodGet, "/", nil)
	reload.Header.Set(theme.HintHeader, "dark")
	page := env.do(reload)
	assert.Contains(t, page.Body.String(), `<html lang="en" class="">`)
}

func TestNavScroll(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	w := env.post("/nav/about", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"scrollTo":{"target":"#about","behavior":"smooth"}}`, w.Header().Get("HX-Trigger"))

	w = env.post("/nav/blog", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("HX-Trigger"))
}

func TestClipboardStatusClears(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})
	env.get("/")

	w := env.post("/clipboard", url.Values{"outcome": {"denied"}})
	assert.Contains(t, w.Body.String(), clipboard.TextFailed)

	w = env.post("/clipboard", url.Values{"outcome": {"copied"}})
	assert.Contains(t, w.Body.String(), clipboard.TextCopied)

	env.clock.Advance(clipboard.DefaultClearAfter)
	assert.Eventually(t, func() bool {
		return !strings.Contains(env.get("/clipboard/status").Body.String(), clipboard.TextCopied)
	}, time.Second, 5*time.Millisecond)
}

func TestAdminFlow(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	w := env.get("/admin/dashboard")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = env.post("/admin/login", url.Values{"username": {"bintang"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.get("/")
	assert.Eventually(t, func() bool {
		visits, err := env.store.Visitors(context.Background(), 10)
		return err == nil && len(visits) == 1
	}, time.Second, 5*time.Millisecond)

	w = env.post("/admin/login", url.Values{"username": {"bintang"}, "password": {"s3cret"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = env.get("/admin/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Unique visitors")

	w = env.get("/admin/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_visitors":1`)
}

func TestVisitorTrackingRespectsDoNotTrack(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("DNT", "1")
	env.do(req)
	env.get("/privacy")
	env.get("/healthz")

	time.Sleep(20 * time.Millisecond)
	visits, err := env.store.Visitors(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestContactFormShowsSendingIndicator(t *testing.T) {
	env := newTestEnv(t, &recordingRelay{})

	body := env.get("/").Body.String()
	assert.Contains(t, body, `hx-indicator="#contact-sending"`)
	assert.Contains(t, body, `id="contact-sending" class="htmx-indicator`)
	assert.Contains(t, body, contact.TextSending)
}

func TestThemeMiddlewareKeepsEarlierVary(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Header("Vary", "Accept-Encoding")
		c.Next()
	}, themeMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"Accept-Encoding", theme.HintHeader}, w.Header().Values("Vary"))
}
