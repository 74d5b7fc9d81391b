package embedding

import (
	"context"
	"hash/fnv"

	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a mock embedding connector for local development and
// tests. Vectors are derived deterministically from the input text so that
// equal texts embed to equal vectors.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Embed(ctx context.Context, req *entity.EmbeddingRequest) (*entity.EmbeddingsResponse, error) {
	texts := req.Input.Texts()

	ctxzap.Info(ctx, "[MOCK] embedding inputs",
		zap.String("model", req.Model),
		zap.Int("input_count", len(texts)),
	)

	data := make([]entity.EmbeddingObject, len(texts))
	for i, text := range texts {
		data[i] = entity.EmbeddingObject{
			Index:     uint64(i),
			Object:    "embedding",
			Embedding: mockVector(text),
		}
	}

	return &entity.EmbeddingsResponse{
		Object: "list",
		Data:   data,
		Model:  req.Model,
	}, nil
}

func mockVector(text string) []float64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float64, 8)
	for i := range vec {
		seed = seed*6364136223846793005 + 1442695040888963407
		vec[i] = float64(int64(seed>>32)) / float64(1<<31)
	}
	return vec
}
