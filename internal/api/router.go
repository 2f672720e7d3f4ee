package api

import (
	"log/slog"
	"net/http"

	"github.com/k0nxt3d/pycleaner/internal/api/middleware"
	"github.com/k0nxt3d/pycleaner/internal/cleaner"
	"github.com/k0nxt3d/pycleaner/internal/scanner"
)

// RouterDeps bundles all dependencies needed by the HTTP router.
type RouterDeps struct {
	Scanner    *scanner.Service
	Cleaner    *cleaner.Service
	Logger     *slog.Logger
	MaxResults int
}

// Router sets up all HTTP routes for the application.
type Router struct {
	scanner       *scanner.Service
	cleaner       *cleaner.Service
	logger        *slog.Logger
	maxResults    int
	csrf          *middleware.CSRF
	deleteLimiter *middleware.DeleteRateLimiter
}

// NewRouter creates a new Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		scanner:       deps.Scanner,
		cleaner:       deps.Cleaner,
		logger:        deps.Logger,
		maxResults:    deps.MaxResults,
		csrf:          middleware.NewCSRF(),
		deleteLimiter: middleware.NewDeleteRateLimiter(),
	}
}

// Handler returns the fully configured HTTP handler with middleware applied.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", r.handleHealth)
	mux.HandleFunc("GET /api/v1/scan", r.handleAPIScan)
	mux.Handle("POST /api/v1/delete",
		r.csrf.Middleware(r.deleteLimiter.Middleware(http.HandlerFunc(r.handleAPIDelete))))

	mux.HandleFunc("GET /{$}", r.handleIndex)
	mux.Handle("POST /delete",
		r.csrf.Middleware(r.deleteLimiter.Middleware(http.HandlerFunc(r.handleDelete))))

	var handler http.Handler = mux
	handler = middleware.SecurityHeaders(handler)
	return middleware.Logging(r.logger)(handler)
}
