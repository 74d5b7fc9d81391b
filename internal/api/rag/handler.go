package rag

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/pkg/logger"
	"github.com/edgerag/rag-gateway/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase RagUsecase
}

func NewHandler(usecase RagUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// ChatCompletions handles POST /v1/chat/completions
func (h *Handler) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ChatCompletions")

	var req entity.RagChatCompletionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request", zap.Error(err))
		response.BadRequest(w, err.Error())
		return
	}

	if req.Stream != nil && *req.Stream {
		h.streamChatCompletions(ctx, w, &req)
		return
	}

	result, err := h.usecase.ChatCompletions(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

func (h *Handler) streamChatCompletions(ctx context.Context, w http.ResponseWriter, req *entity.RagChatCompletionsRequest) {
	body, contentType, err := h.usecase.ChatCompletionsStream(ctx, req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "text/event-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				ctxzap.Warn(ctx, "client disconnected during stream", zap.Error(writeErr))
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				ctxzap.Error(ctx, "stream interrupted", zap.Error(readErr))
			}
			return
		}
	}
}

// Retrieve handles POST /v1/retrieve
func (h *Handler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Retrieve")

	var req entity.RagChatCompletionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request", zap.Error(err))
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.usecase.Retrieve(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// Embeddings handles POST /v1/embeddings
func (h *Handler) Embeddings(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Embeddings")

	var req entity.RagEmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request", zap.Error(err))
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.usecase.Index(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrEmptyMessages),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat):
		response.BadRequest(w, err.Error())
	default:
		response.Internal(w, "internal server error")
	}
}
