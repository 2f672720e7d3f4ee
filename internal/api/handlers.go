package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/k0nxt3d/pycleaner/internal/pathutil"
	"github.com/k0nxt3d/pycleaner/internal/version"
	"github.com/k0nxt3d/pycleaner/web/templates"
)

const appName = "PyCleaner"

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	basePath := pathutil.Normalize(req.URL.Query().Get("path"))
	flashes := popFlashes(w, req)

	data := templates.IndexData{
		AppName:    appName,
		Version:    version.Version,
		BasePath:   basePath,
		MaxResults: r.maxResults,
		CSRFToken:  r.csrf.Token(w, req),
		Examples:   templates.DefaultExamples(),
	}

	if basePath != "" {
		data.Scanned = true
		result := r.scanner.Scan(req.Context(), basePath)
		data.Results = result.Found
		data.ScanError = result.Error
		data.Truncated = result.Truncated

		if result.Error == "" {
			if warn := largeRootWarning(basePath); warn != "" {
				flashes = append(flashes, templates.Flash{Category: "warn", Message: warn})
			}
			if result.Truncated {
				flashes = append(flashes, templates.Flash{
					Category: "warn",
					Message:  fmt.Sprintf("Result limit reached (%d). Narrow your scan path for more precise results.", r.maxResults),
				})
			}
		}
	}

	data.Flashes = flashes

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.RenderIndex(w, data); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// largeRootWarning returns a warning when the base path is the filesystem
// root or the user's home directory. Scanning either is allowed but slow.
func largeRootWarning(base string) string {
	abs, err := filepath.Abs(base)
	if err != nil {
		return ""
	}
	big := []string{filepath.Clean(string(os.PathSeparator))}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		big = append(big, filepath.Clean(home))
	}
	for _, p := range big {
		if abs == p {
			return "Heads up: scanning very large roots can be slow. Consider narrowing to a projects folder."
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
