package chat

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/integration/common"
	pkghttp "github.com/edgerag/rag-gateway/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.ChatConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ChatConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// ChatCompletions forwards a plain chat-completion request to the inference
// engine and returns the full response.
func (c *Connector) ChatCompletions(ctx context.Context, req *entity.ChatCompletionRequest) (*entity.ChatCompletionsResponse, error) {
	ctxzap.Debug(ctx, "forwarding chat completion",
		zap.Int("message_count", len(req.Messages)),
	)

	resp, err := retry.DoWithData(func() (*entity.ChatCompletionsResponse, error) {
		var out entity.ChatCompletionsResponse
		if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		ctxzap.Error(ctx, "chat completion failed", zap.Error(err))
		return nil, fmt.Errorf("chat completions: %w", err)
	}

	return resp, nil
}

// ChatCompletionsStream forwards a streaming chat-completion request. The
// caller owns the returned body and must close it after draining the stream;
// no retries are attempted since a stream may already have been partially
// consumed.
func (c *Connector) ChatCompletionsStream(ctx context.Context, req *entity.ChatCompletionRequest) (io.ReadCloser, string, error) {
	ctxzap.Debug(ctx, "forwarding streaming chat completion",
		zap.Int("message_count", len(req.Messages)),
	)

	body, contentType, err := c.connector.DoStreamRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req)
	if err != nil {
		ctxzap.Error(ctx, "streaming chat completion failed", zap.Error(err))
		return nil, "", fmt.Errorf("chat completions stream: %w", err)
	}

	return body, contentType, nil
}
