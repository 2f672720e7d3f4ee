package api

import (
	"encoding/json"
	"net/http"
)

// handleAPIScan runs a scan and returns the result as JSON.
// GET /api/v1/scan?path=
func (r *Router) handleAPIScan(w http.ResponseWriter, req *http.Request) {
	result := r.scanner.Scan(req.Context(), req.URL.Query().Get("path"))
	writeJSON(w, http.StatusOK, result)
}

// handleAPIDelete deletes the given paths and returns the outcome as JSON.
// POST /api/v1/delete
func (r *Router) handleAPIDelete(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Paths []string `json:"paths"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(body.Paths) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no paths provided"})
		return
	}

	writeJSON(w, http.StatusOK, r.cleaner.Clean(body.Paths))
}
