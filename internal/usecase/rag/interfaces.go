package rag

import (
	"context"
	"io"

	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/integration/vectorstore"
)

type EmbeddingConnector interface {
	Embed(ctx context.Context, req *entity.EmbeddingRequest) (*entity.EmbeddingsResponse, error)
}

type VectorStoreConnector interface {
	Search(ctx context.Context, storeURL, collection string, vector []float64, limit uint64, scoreThreshold float32) ([]entity.RagScoredPoint, error)
	Upsert(ctx context.Context, storeURL, collection string, points []vectorstore.Point) error
}

type ChatConnector interface {
	ChatCompletions(ctx context.Context, req *entity.ChatCompletionRequest) (*entity.ChatCompletionsResponse, error)
	ChatCompletionsStream(ctx context.Context, req *entity.ChatCompletionRequest) (io.ReadCloser, string, error)
}
