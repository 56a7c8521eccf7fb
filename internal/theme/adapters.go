package theme

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// HintHeader is the client hint carrying prefers-color-scheme.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * 60 * 60
)

// CookieStore keeps the choice in a long-lived cookie. It is not HttpOnly so
// the page script can apply the palette before first paint.
type CookieStore struct {
	c *gin.Context
}

func NewCookieStore(c *gin.Context) *CookieStore {
	return &CookieStore{c: c}
}

func (s *CookieStore) Load() (Choice, bool) {
	v, err := s.c.Cookie(Key)
	if err != nil {
		return "", false
	}
	return Parse(v)
}

func (s *CookieStore) Save(choice Choice) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(Key, string(choice), cookieMaxAge, "/", "", false, false)
	return nil
}

// ClientHint reads the browser's color-scheme preference from request headers.
type ClientHint struct {
	Header http.Header
}

func (h ClientHint) PrefersDark() (bool, bool) {
	switch strings.Trim(strings.ToLower(h.Header.Get(HintHeader)), `"`) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// MemoryStore is a Store backed by a variable.
type MemoryStore struct {
	mu    sync.Mutex
	value string
}

func (s *MemoryStore) Load() (Choice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Parse(s.value)
}

func (s *MemoryStore) Save(choice Choice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = string(choice)
	return nil
}

// Value returns the raw persisted string.
func (s *MemoryStore) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// StaticEnv is an Environment with a fixed answer.
type StaticEnv struct {
	Dark  bool
	Known bool
}

func (e StaticEnv) PrefersDark() (bool, bool) { return e.Dark, e.Known }
