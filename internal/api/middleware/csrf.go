package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
)

const csrfCookieName = "csrf_token"
const csrfFormField = "csrf_token"

// CSRF provides token-based protection for the delete form. The index page
// embeds the token as a hidden field; unsafe methods must echo it back.
type CSRF struct {
	mu     sync.RWMutex
	tokens map[string]bool
}

// NewCSRF creates a CSRF middleware instance.
func NewCSRF() *CSRF {
	return &CSRF{tokens: make(map[string]bool)}
}

// Middleware validates the token on unsafe methods. Safe methods pass through.
func (c *CSRF) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if token == "" {
			token = r.FormValue(csrfFormField)
		}

		if token == "" || !c.valid(token) {
			http.Error(w, "invalid CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Token returns the request's CSRF token, minting one (and setting the
// cookie) when the request does not carry a known token yet. Handlers call
// this when rendering a form.
func (c *CSRF) Token(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		c.mu.RLock()
		exists := c.tokens[cookie.Value]
		c.mu.RUnlock()
		if exists {
			return cookie.Value
		}
	}

	token := c.generate()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return token
}

func (c *CSRF) generate() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	token := hex.EncodeToString(b)

	c.mu.Lock()
	c.tokens[token] = true
	c.mu.Unlock()

	return token
}

func (c *CSRF) valid(token string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens[token]
}
