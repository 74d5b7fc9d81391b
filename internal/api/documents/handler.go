package documents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/pkg/logger"
	"github.com/edgerag/rag-gateway/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase DocumentsUsecase
	cfg     config.FileStoreConfig
}

func NewHandler(usecase DocumentsUsecase, cfg config.FileStoreConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// UploadFile handles POST /v1/files
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadFile")

	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.BadRequest(w, "invalid form data or size too large")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		ctxzap.Warn(ctx, "no file provided")
		response.BadRequest(w, "a 'file' form field is required")
		return
	}

	object, err := h.usecase.SaveUpload(ctx, files[0])
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, object)
}

// Chunks handles POST /v1/chunks
func (h *Handler) Chunks(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chunks")

	var req entity.ChunksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request", zap.Error(err))
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.usecase.Chunk(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrFileNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrTooManyFiles):
		response.BadRequest(w, err.Error())
	default:
		response.Internal(w, "internal server error")
	}
}
