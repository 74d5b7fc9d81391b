package documents

import (
	"context"
	"mime/multipart"

	"github.com/edgerag/rag-gateway/internal/entity"
)

type DocumentsUsecase interface {
	SaveUpload(ctx context.Context, fh *multipart.FileHeader) (*entity.FileObject, error)
	Chunk(ctx context.Context, req *entity.ChunksRequest) (*entity.ChunksResponse, error)
}
