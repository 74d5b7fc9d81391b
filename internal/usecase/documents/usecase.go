package documents

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/pkg/chunker"
	"github.com/edgerag/rag-gateway/internal/pkg/extractor"
	"github.com/edgerag/rag-gateway/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DocumentsUsecase implements document upload and chunking business logic
type DocumentsUsecase struct {
	validator *validator.Validator
	cfg       config.FileStoreConfig
	logger    *zap.Logger
}

// NewUsecase creates a new documents use case
func NewUsecase(validator *validator.Validator, cfg config.FileStoreConfig, logger *zap.Logger) *DocumentsUsecase {
	return &DocumentsUsecase{
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// SaveUpload stores an uploaded file under a fresh id and returns its
// file object.
func (uc *DocumentsUsecase) SaveUpload(ctx context.Context, fh *multipart.FileHeader) (*entity.FileObject, error) {
	if err := uc.validator.ValidateUpload(fh); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	filename := validator.SanitizeFilename(fh.Filename)

	dir := filepath.Join(uc.cfg.Dir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}

	ctxzap.Info(ctx, "stored uploaded file",
		zap.String("id", id),
		zap.String("filename", filename),
		zap.Int64("bytes", written),
	)

	return &entity.FileObject{
		ID:        id,
		Bytes:     uint64(written),
		CreatedAt: time.Now().Unix(),
		Filename:  filename,
		Object:    entity.FileObjectType,
		Purpose:   entity.FilePurposeAssistants,
	}, nil
}

// Chunk extracts text from a previously uploaded file and splits it into
// chunks of at most the requested capacity.
func (uc *DocumentsUsecase) Chunk(ctx context.Context, req *entity.ChunksRequest) (*entity.ChunksResponse, error) {
	if err := uc.validator.ValidateChunksRequest(req); err != nil {
		return nil, err
	}

	path := filepath.Join(uc.cfg.Dir, req.ID, validator.SanitizeFilename(req.Filename))
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s/%s", entity.ErrFileNotFound, req.ID, req.Filename)
	}

	ext, err := extractor.ForFilename(path)
	if err != nil {
		return nil, err
	}

	text, err := ext.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	chunks := chunker.Split(text, req.ChunkCapacity)

	ctxzap.Info(ctx, "chunked document",
		zap.String("id", req.ID),
		zap.String("filename", req.Filename),
		zap.Int("chunks", len(chunks)),
	)

	return &entity.ChunksResponse{
		ID:       req.ID,
		Filename: req.Filename,
		Chunks:   chunks,
	}, nil
}
