package vectorstore

import (
	"context"
	"sync"

	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is an in-memory vector store for local development and
// tests. Similarity is a plain dot product over the stored vectors.
type MockConnector struct {
	mu         sync.RWMutex
	collection map[string][]Point
	logger     *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		collection: make(map[string][]Point),
		logger:     logger,
	}
}

func (m *MockConnector) Search(ctx context.Context, storeURL, collection string, vector []float64, limit uint64, scoreThreshold float32) ([]entity.RagScoredPoint, error) {
	ctxzap.Info(ctx, "[MOCK] searching vector store",
		zap.String("collection", collection),
		zap.Uint64("limit", limit),
	)

	m.mu.RLock()
	stored := m.collection[collection]
	m.mu.RUnlock()

	var points []entity.RagScoredPoint
	for _, p := range stored {
		score := dot(vector, p.Vector)
		if score < scoreThreshold {
			continue
		}
		source, _ := p.Payload[payloadSourceKey].(string)
		points = append(points, entity.RagScoredPoint{Source: source, Score: score})
	}

	// highest score first
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[j].Score > points[i].Score {
				points[i], points[j] = points[j], points[i]
			}
		}
	}

	if uint64(len(points)) > limit {
		points = points[:limit]
	}

	return points, nil
}

func (m *MockConnector) Upsert(ctx context.Context, storeURL, collection string, points []Point) error {
	ctxzap.Info(ctx, "[MOCK] upserting points",
		zap.String("collection", collection),
		zap.Int("point_count", len(points)),
	)

	m.mu.Lock()
	m.collection[collection] = append(m.collection[collection], points...)
	m.mu.Unlock()

	return nil
}

func dot(a, b []float64) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return float32(sum)
}
