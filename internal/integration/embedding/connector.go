package embedding

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
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.EmbeddingConnectorConfig
	connector *pkghttp.Connector
	cache     *gocache.Cache
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbeddingConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		cache:     gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		config:    cfg,
		logger:    logger,
	}
}

// Embed turns the request's input texts into embedding vectors. Identical
// requests within the cache TTL are served from memory, since chat queries
// tend to repeat during a conversation.
func (c *Connector) Embed(ctx context.Context, req *entity.EmbeddingRequest) (*entity.EmbeddingsResponse, error) {
	key := cacheKey(req)
	if cached, ok := c.cache.Get(key); ok {
		ctxzap.Debug(ctx, "embedding served from cache", zap.String("model", req.Model))
		return cached.(*entity.EmbeddingsResponse), nil
	}

	ctxzap.Debug(ctx, "requesting embeddings",
		zap.String("model", req.Model),
		zap.Int("input_count", len(req.Input.Texts())),
	)

	resp, err := retry.DoWithData(func() (*entity.EmbeddingsResponse, error) {
		var out entity.EmbeddingsResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbeddingsEndpoint, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "failed to get embeddings", zap.Error(err))
		return nil, fmt.Errorf("embed: %w", err)
	}

	if len(resp.Data) != len(req.Input.Texts()) {
		return nil, fmt.Errorf("embed: got %d vectors for %d inputs", len(resp.Data), len(req.Input.Texts()))
	}

	c.cache.SetDefault(key, resp)

	ctxzap.Debug(ctx, "embeddings received",
		zap.Int("vector_count", len(resp.Data)),
	)

	return resp, nil
}

func cacheKey(req *entity.EmbeddingRequest) string {
	return req.Model + "\x00" + strings.Join(req.Input.Texts(), "\x00")
}
