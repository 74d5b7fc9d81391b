package api

import (
	"net/http"
	"time"

	"github.com/edgerag/rag-gateway/internal/api/docs"
	documentsapi "github.com/edgerag/rag-gateway/internal/api/documents"
	"github.com/edgerag/rag-gateway/internal/api/middleware"
	ragapi "github.com/edgerag/rag-gateway/internal/api/rag"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(ragHandler *ragapi.Handler, documentsHandler *documentsapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	ragapi.RegisterRoutes(r, ragHandler)
	documentsapi.RegisterRoutes(r, documentsHandler)

	return r
}
