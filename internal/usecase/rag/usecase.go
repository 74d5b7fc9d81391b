package rag

import (
	"context"
	"fmt"
	"io"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/integration/vectorstore"
	"github.com/edgerag/rag-gateway/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// RagUsecase implements retrieval-augmented generation business logic
type RagUsecase struct {
	embeddingConnector   EmbeddingConnector
	vectorStoreConnector VectorStoreConnector
	chatConnector        ChatConnector
	validator            *validator.Validator
	cfg                  config.RetrievalConfig
	logger               *zap.Logger
}

// NewUsecase creates a new RAG use case
func NewUsecase(
	embeddingConnector EmbeddingConnector,
	vectorStoreConnector VectorStoreConnector,
	chatConnector ChatConnector,
	validator *validator.Validator,
	cfg config.RetrievalConfig,
	logger *zap.Logger,
) *RagUsecase {
	return &RagUsecase{
		embeddingConnector:   embeddingConnector,
		vectorStoreConnector: vectorStoreConnector,
		chatConnector:        chatConnector,
		validator:            validator,
		cfg:                  cfg,
		logger:               logger,
	}
}

// Retrieve embeds the conversation query and searches the vector store,
// without calling the chat model.
func (uc *RagUsecase) Retrieve(ctx context.Context, req *entity.RagChatCompletionsRequest) (*entity.RetrieveObject, error) {
	points, err := uc.retrieveContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if points == nil {
		// an empty points list still serializes, distinguishing
		// "nothing matched" from "no search ran"
		points = []entity.RagScoredPoint{}
	}

	return &entity.RetrieveObject{
		Points:         points,
		Limit:          uint(req.Limit),
		ScoreThreshold: uc.cfg.ScoreThreshold,
	}, nil
}

// ChatCompletions runs the full retrieval pipeline and forwards the enriched
// conversation to the chat model.
func (uc *RagUsecase) ChatCompletions(ctx context.Context, req *entity.RagChatCompletionsRequest) (*entity.ChatCompletionsResponse, error) {
	chatReq, err := uc.buildChatRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	response, err := uc.chatConnector.ChatCompletions(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completions: %w", err)
	}

	return response, nil
}

// ChatCompletionsStream is the streaming variant of ChatCompletions. The
// caller owns the returned body and must close it.
func (uc *RagUsecase) ChatCompletionsStream(ctx context.Context, req *entity.RagChatCompletionsRequest) (io.ReadCloser, string, error) {
	chatReq, err := uc.buildChatRequest(ctx, req)
	if err != nil {
		return nil, "", err
	}

	body, contentType, err := uc.chatConnector.ChatCompletionsStream(ctx, chatReq)
	if err != nil {
		return nil, "", fmt.Errorf("chat completions stream: %w", err)
	}

	return body, contentType, nil
}

// Index embeds the given inputs and upserts one point per input text into
// the vector store collection.
func (uc *RagUsecase) Index(ctx context.Context, req *entity.RagEmbeddingRequest) (*entity.EmbeddingsResponse, error) {
	texts := req.EmbeddingRequest.Input.Texts()

	response, err := uc.embeddingConnector.Embed(ctx, &req.EmbeddingRequest)
	if err != nil {
		return nil, fmt.Errorf("embed inputs: %w", err)
	}

	if len(response.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(response.Data))
	}

	points := make([]vectorstore.Point, 0, len(response.Data))
	for i, obj := range response.Data {
		points = append(points, vectorstore.NewPoint(uuid.New().String(), obj.Embedding, texts[i]))
	}

	err = uc.vectorStoreConnector.Upsert(ctx, req.QdrantURL, req.QdrantCollectionName, points)
	if err != nil {
		return nil, fmt.Errorf("upsert points: %w", err)
	}

	ctxzap.Info(ctx, "indexed documents",
		zap.String("collection", req.QdrantCollectionName),
		zap.Int("points", len(points)),
	)

	return response, nil
}

// buildChatRequest retrieves context for the conversation, merges it into
// the messages and converts the request for the chat backend.
func (uc *RagUsecase) buildChatRequest(ctx context.Context, req *entity.RagChatCompletionsRequest) (*entity.ChatCompletionRequest, error) {
	points, err := uc.retrieveContext(ctx, req)
	if err != nil {
		return nil, err
	}

	chatReq := req.AsChatCompletionsRequest()
	chatReq.Messages = mergeRetrievedContext(chatReq.Messages, points)

	return &chatReq, nil
}

// retrieveContext validates the request, builds the retrieval query from the
// trailing user messages, embeds it and searches the vector store.
func (uc *RagUsecase) retrieveContext(ctx context.Context, req *entity.RagChatCompletionsRequest) ([]entity.RagScoredPoint, error) {
	if err := uc.validator.ValidateRagChatRequest(req); err != nil {
		return nil, err
	}

	window := uc.cfg.DefaultContextWindow
	if req.ContextWindow != nil && *req.ContextWindow > 0 {
		window = *req.ContextWindow
	}

	query := buildRetrievalQuery(req.Messages, window)
	if query == "" {
		return nil, entity.ErrEmptyMessages
	}

	embedReq := entity.EmbeddingRequest{
		Model: req.EmbeddingModel,
		Input: entity.NewEmbeddingInput(query),
	}
	if req.EncodingFormat != nil {
		embedReq.EncodingFormat = req.EncodingFormat
	}

	embeddings, err := uc.embeddingConnector.Embed(ctx, &embedReq)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings.Data) == 0 {
		return nil, fmt.Errorf("embedding backend returned no vectors")
	}

	points, err := uc.vectorStoreConnector.Search(
		ctx,
		req.QdrantURL,
		req.QdrantCollectionName,
		embeddings.Data[0].Embedding,
		req.Limit,
		uc.cfg.ScoreThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("search vector store: %w", err)
	}

	ctxzap.Info(ctx, "retrieved context",
		zap.String("collection", req.QdrantCollectionName),
		zap.Uint64("limit", req.Limit),
		zap.Int("points", len(points)),
	)

	return points, nil
}
