package documents

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers document upload and chunking routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/v1/files", h.UploadFile)
	r.Post("/v1/chunks", h.Chunks)
}
