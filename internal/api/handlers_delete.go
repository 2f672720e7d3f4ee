package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/k0nxt3d/pycleaner/internal/cleaner"
	"github.com/k0nxt3d/pycleaner/internal/pathutil"
	"github.com/k0nxt3d/pycleaner/web/templates"
)

// failurePreviewLimit bounds how many per-item failures the flash shows.
const failurePreviewLimit = 8

// handleDelete processes the delete form and redirects back to a fresh scan.
// POST /delete
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	basePath := pathutil.Normalize(req.PostFormValue("base_path"))
	selected := req.PostForm["selected"]

	if basePath == "" {
		setFlashes(w, []templates.Flash{{Category: "err", Message: "Missing base path. Please scan again."}})
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	if len(selected) == 0 {
		setFlashes(w, []templates.Flash{{Category: "warn", Message: "No items selected."}})
		http.Redirect(w, req, scanURL(basePath), http.StatusSeeOther)
		return
	}

	outcome := r.cleaner.Clean(selected)

	var flashes []templates.Flash
	if outcome.DeletedCount > 0 {
		flashes = append(flashes, templates.Flash{
			Category: "ok",
			Message:  fmt.Sprintf("Deleted %d venv folder(s).", outcome.DeletedCount),
		})
	}
	if len(outcome.Failures) > 0 {
		flashes = append(flashes, templates.Flash{
			Category: "warn",
			Message:  failureSummary(outcome.Failures),
		})
	}
	setFlashes(w, flashes)

	// Redirect back to the scan view so the list refreshes.
	http.Redirect(w, req, scanURL(basePath), http.StatusSeeOther)
}

// failureSummary formats a bounded preview of per-item failures.
func failureSummary(failures []cleaner.Failure) string {
	preview := failures
	if len(preview) > failurePreviewLimit {
		preview = preview[:failurePreviewLimit]
	}

	parts := make([]string, 0, len(preview))
	for _, f := range preview {
		parts = append(parts, fmt.Sprintf("%s -> %s", f.Path, f.Reason))
	}

	extra := ""
	if len(failures) > failurePreviewLimit {
		extra = fmt.Sprintf(" (+%d more)", len(failures)-failurePreviewLimit)
	}
	return fmt.Sprintf("Some items were not deleted: %s%s", strings.Join(parts, "; "), extra)
}

func scanURL(basePath string) string {
	return "/?path=" + url.QueryEscape(basePath)
}
