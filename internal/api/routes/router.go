package routes

import (
	"net/http"

	"github.com/medfind/medfinder/internal/api/handlers"
	"github.com/medfind/medfinder/internal/api/middleware"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(searchHandler *handlers.SearchHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		metrics:       metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoint
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)

	// Apply middleware chain
	var handler http.Handler = r.mux
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
