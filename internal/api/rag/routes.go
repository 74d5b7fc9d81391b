package rag

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers retrieval-augmented generation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/v1/chat/completions", h.ChatCompletions)
	r.Post("/v1/retrieve", h.Retrieve)
	r.Post("/v1/embeddings", h.Embeddings)
}
