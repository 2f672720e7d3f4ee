package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k0nxt3d/pycleaner/internal/cleaner"
	"github.com/k0nxt3d/pycleaner/internal/scanner"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRouter(RouterDeps{
		Scanner:    scanner.NewService(logger, 100),
		Cleaner:    cleaner.NewService(logger),
		Logger:     logger,
		MaxResults: 100,
	})
}

func mkVenv(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	return dir
}

func TestHandleHealth(t *testing.T) {
	handler := newTestRouter(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestHandleAPIScan(t *testing.T) {
	base := t.TempDir()
	venv := mkVenv(t, base, "proj", "venv")

	handler := newTestRouter(t).Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scan?path="+url.QueryEscape(base), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var result scanner.ScanResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Error != "" {
		t.Fatalf("unexpected scan error: %s", result.Error)
	}
	if len(result.Found) != 1 || result.Found[0] != venv {
		t.Errorf("Found = %v, want [%s]", result.Found, venv)
	}
}

func TestHandleAPIScan_BadPath(t *testing.T) {
	handler := newTestRouter(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scan?path="+url.QueryEscape("/no/such/place"), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var result scanner.ScanResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Error == "" {
		t.Error("expected a scan error for a missing path")
	}
	if len(result.Found) != 0 {
		t.Errorf("expected no matches, got %v", result.Found)
	}
}

// mintCSRFToken fetches the index page and returns the token it sets.
func mintCSRFToken(t *testing.T, handler http.Handler) string {
	t.Helper()
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range w.Result().Cookies() {
		if c.Name == "csrf_token" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no CSRF cookie on index GET")
	return ""
}

func TestHandleAPIDelete(t *testing.T) {
	base := t.TempDir()
	venv := mkVenv(t, base, "proj", "venv")
	bogus := filepath.Join(base, "proj") // wrong name

	handler := newTestRouter(t).Handler()
	token := mintCSRFToken(t, handler)

	payload, _ := json.Marshal(map[string][]string{"paths": {venv, bogus}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/delete", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var outcome cleaner.Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if outcome.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", outcome.DeletedCount)
	}
	if len(outcome.Failures) != 1 || outcome.Failures[0].Reason != cleaner.ReasonNotNamedVenv {
		t.Errorf("Failures = %v, want one %q", outcome.Failures, cleaner.ReasonNotNamedVenv)
	}
	if _, err := os.Stat(venv); !os.IsNotExist(err) {
		t.Error("venv still exists after API delete")
	}
}

func TestHandleAPIDelete_EmptyBody(t *testing.T) {
	handler := newTestRouter(t).Handler()
	token := mintCSRFToken(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/delete", strings.NewReader(`{"paths":[]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRF-Token", token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleAPIDelete_RequiresCSRF(t *testing.T) {
	base := t.TempDir()
	venv := mkVenv(t, base, "proj", "venv")

	handler := newTestRouter(t).Handler()

	payload, _ := json.Marshal(map[string][]string{"paths": {venv}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/delete", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if _, err := os.Stat(venv); err != nil {
		t.Errorf("venv should be untouched without a token: %v", err)
	}
}

func TestHandleIndex_NoScan(t *testing.T) {
	handler := newTestRouter(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Base path to scan") {
		t.Error("index page missing scan form")
	}
	if strings.Contains(body, "Scan results") {
		t.Error("index page should not show results before a scan")
	}
}

func TestHandleIndex_WithScan(t *testing.T) {
	base := t.TempDir()
	venv := mkVenv(t, base, "proj", "venv")

	handler := newTestRouter(t).Handler()
	req := httptest.NewRequest(http.MethodGet, "/?path="+url.QueryEscape(base), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Scan results") {
		t.Error("expected results card")
	}
	if !strings.Contains(body, venv) {
		t.Errorf("expected match %s in page", venv)
	}
}

func TestHandleDelete_RequiresCSRF(t *testing.T) {
	handler := newTestRouter(t).Handler()

	form := url.Values{"base_path": {"/tmp"}, "selected": {"/tmp/venv"}}
	req := httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestHandleDelete_FullFlow(t *testing.T) {
	base := t.TempDir()
	venv := mkVenv(t, base, "proj", "venv")

	router := newTestRouter(t)
	handler := router.Handler()

	// First GET mints the CSRF token.
	getReq := httptest.NewRequest(http.MethodGet, "/", nil)
	getW := httptest.NewRecorder()
	handler.ServeHTTP(getW, getReq)

	var token string
	for _, c := range getW.Result().Cookies() {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no CSRF cookie on index GET")
	}

	form := url.Values{
		"base_path":  {base},
		"selected":   {venv},
		"csrf_token": {token},
	}
	req := httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusSeeOther, w.Body.String())
	}
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "path=") {
		t.Errorf("redirect location %q should carry the base path", loc)
	}
	if _, err := os.Stat(venv); !os.IsNotExist(err) {
		t.Error("venv still exists after delete")
	}

	// A flash cookie should carry the success message across the redirect.
	flashed := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "pc_flash" && c.Value != "" {
			flashed = true
		}
	}
	if !flashed {
		t.Error("expected a flash cookie after delete")
	}
}

func TestHandleDelete_NoSelection(t *testing.T) {
	router := newTestRouter(t)
	handler := router.Handler()

	getW := httptest.NewRecorder()
	handler.ServeHTTP(getW, httptest.NewRequest(http.MethodGet, "/", nil))
	var token string
	for _, c := range getW.Result().Cookies() {
		if c.Name == "csrf_token" {
			token = c.Value
		}
	}

	form := url.Values{"base_path": {t.TempDir()}, "csrf_token": {token}}
	req := httptest.NewRequest(http.MethodPost, "/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
}

func TestFailureSummary_Preview(t *testing.T) {
	var failures []cleaner.Failure
	for i := 0; i < 10; i++ {
		failures = append(failures, cleaner.Failure{Path: "/p", Reason: "r"})
	}

	got := failureSummary(failures)
	if !strings.Contains(got, "(+2 more)") {
		t.Errorf("summary %q should note 2 extra failures", got)
	}
	if strings.Count(got, "/p -> r") != failurePreviewLimit {
		t.Errorf("summary should preview %d failures: %q", failurePreviewLimit, got)
	}
}
