package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/k0nxt3d/pycleaner/web/templates"
)

const flashCookieName = "pc_flash"

// setFlashes stores one-shot messages in a short-lived cookie so they survive
// the post-redirect-get hop.
func setFlashes(w http.ResponseWriter, flashes []templates.Flash) {
	if len(flashes) == 0 {
		return
	}
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   60,
	})
}

// popFlashes reads and clears any pending flash messages.
func popFlashes(w http.ResponseWriter, r *http.Request) []templates.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []templates.Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
