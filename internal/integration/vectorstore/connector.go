package vectorstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/integration/common"
	pkghttp "github.com/edgerag/rag-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Point is one embedded chunk to store: its vector plus the payload carrying
// the source text.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float64      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// payload key holding the source text of a point
const payloadSourceKey = "source"

type searchRequest struct {
	Vector         []float64 `json:"vector"`
	Limit          uint64    `json:"limit"`
	ScoreThreshold float32   `json:"score_threshold,omitempty"`
	WithPayload    bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []scoredPoint `json:"result"`
	Status string        `json:"status"`
}

type scoredPoint struct {
	ID      any            `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

type upsertRequest struct {
	Points []Point `json:"points"`
}

type upsertResponse struct {
	Status string `json:"status"`
}

// Connector talks to a Qdrant-compatible vector store over its REST API. The
// store URL and collection name come from the request being served, not from
// configuration, so one connector serves any number of stores.
type Connector struct {
	config    config.VectorStoreConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.VectorStoreConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search returns the points of the collection most similar to the query
// vector. Points below scoreThreshold are filtered out by the store.
func (c *Connector) Search(ctx context.Context, storeURL, collection string, vector []float64, limit uint64, scoreThreshold float32) ([]entity.RagScoredPoint, error) {
	endpoint := pointsURL(storeURL, collection) + "/search"

	ctxzap.Debug(ctx, "searching vector store",
		zap.String("collection", collection),
		zap.Uint64("limit", limit),
	)

	req := searchRequest{
		Vector:         vector,
		Limit:          limit,
		ScoreThreshold: scoreThreshold,
		WithPayload:    true,
	}

	resp, err := retry.DoWithData(func() (*searchResponse, error) {
		var out searchResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, "", req, &out, c.requestOpts(endpoint)...); err != nil {
			return nil, err
		}
		return &out, nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "vector store search failed", zap.Error(err))
		return nil, fmt.Errorf("search collection %q: %w", collection, err)
	}

	points := make([]entity.RagScoredPoint, 0, len(resp.Result))
	for _, p := range resp.Result {
		source, _ := p.Payload[payloadSourceKey].(string)
		points = append(points, entity.RagScoredPoint{
			Source: source,
			Score:  p.Score,
		})
	}

	ctxzap.Debug(ctx, "vector store search finished",
		zap.Int("point_count", len(points)),
	)

	return points, nil
}

// Upsert writes the given points into the collection.
func (c *Connector) Upsert(ctx context.Context, storeURL, collection string, points []Point) error {
	endpoint := pointsURL(storeURL, collection)

	ctxzap.Debug(ctx, "upserting points",
		zap.String("collection", collection),
		zap.Int("point_count", len(points)),
	)

	err := retry.Do(func() error {
		var out upsertResponse
		return c.connector.DoRequest(ctx, http.MethodPut, "", upsertRequest{Points: points}, &out, c.requestOpts(endpoint)...)
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "vector store upsert failed", zap.Error(err))
		return fmt.Errorf("upsert into collection %q: %w", collection, err)
	}

	return nil
}

// NewPoint builds a point storing the given text under its embedding vector.
func NewPoint(id string, vector []float64, source string) Point {
	return Point{
		ID:     id,
		Vector: vector,
		Payload: map[string]any{
			payloadSourceKey: source,
		},
	}
}

func (c *Connector) requestOpts(url string) []pkghttp.RequestOpt {
	opts := []pkghttp.RequestOpt{pkghttp.WithURL(url)}
	if c.config.APIKey != "" {
		opts = append(opts, pkghttp.WithHeader("api-key", c.config.APIKey))
	}
	return opts
}

func pointsURL(storeURL, collection string) string {
	return fmt.Sprintf("%s/collections/%s/points", strings.TrimRight(storeURL, "/"), collection)
}
