package rag

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/edgerag/rag-gateway/internal/integration/vectorstore"
	"github.com/edgerag/rag-gateway/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEmbedder struct {
	lastReq *entity.EmbeddingRequest
	vectors [][]float64
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, req *entity.EmbeddingRequest) (*entity.EmbeddingsResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}

	data := make([]entity.EmbeddingObject, 0, len(s.vectors))
	for i, vec := range s.vectors {
		data = append(data, entity.EmbeddingObject{
			Index:     uint64(i),
			Object:    "embedding",
			Embedding: vec,
		})
	}

	return &entity.EmbeddingsResponse{
		Object: "list",
		Data:   data,
		Model:  req.Model,
		Usage:  entity.Usage{PromptTokens: 1, TotalTokens: 1},
	}, nil
}

type stubStore struct {
	lastURL        string
	lastCollection string
	lastVector     []float64
	lastLimit      uint64
	lastThreshold  float32
	upserted       []vectorstore.Point
	points         []entity.RagScoredPoint
	err            error
}

func (s *stubStore) Search(_ context.Context, storeURL, collection string, vector []float64, limit uint64, scoreThreshold float32) ([]entity.RagScoredPoint, error) {
	s.lastURL = storeURL
	s.lastCollection = collection
	s.lastVector = vector
	s.lastLimit = limit
	s.lastThreshold = scoreThreshold
	return s.points, s.err
}

func (s *stubStore) Upsert(_ context.Context, storeURL, collection string, points []vectorstore.Point) error {
	s.lastURL = storeURL
	s.lastCollection = collection
	s.upserted = append(s.upserted, points...)
	return s.err
}

type stubChat struct {
	lastReq  *entity.ChatCompletionRequest
	response *entity.ChatCompletionsResponse
	err      error
}

func (s *stubChat) ChatCompletions(_ context.Context, req *entity.ChatCompletionRequest) (*entity.ChatCompletionsResponse, error) {
	s.lastReq = req
	return s.response, s.err
}

func (s *stubChat) ChatCompletionsStream(_ context.Context, req *entity.ChatCompletionRequest) (io.ReadCloser, string, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, "", s.err
	}
	return io.NopCloser(nil), "text/event-stream", nil
}

func newTestUsecase(embedder *stubEmbedder, store *stubStore, chat *stubChat) *RagUsecase {
	return NewUsecase(
		embedder,
		store,
		chat,
		validator.NewValidator(config.FileStoreConfig{MaxFileSize: 1 << 20, MaxUploadSize: 1 << 22}),
		config.RetrievalConfig{ScoreThreshold: 0.5, DefaultContextWindow: 1},
		zap.NewNop(),
	)
}

func ragRequest() *entity.RagChatCompletionsRequest {
	return &entity.RagChatCompletionsRequest{
		Messages: []entity.ChatCompletionRequestMessage{
			{Role: entity.RoleUser, Content: "What is a vector database?"},
		},
		EmbeddingModel:       "all-MiniLM-L6-v2",
		QdrantURL:            "http://localhost:6333",
		QdrantCollectionName: "docs",
		Limit:                3,
	}
}

func TestRetrieveSearchesWithQueryEmbedding(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{0.1, 0.2, 0.3}}}
	store := &stubStore{points: []entity.RagScoredPoint{
		{Source: "Vector databases store embeddings.", Score: 0.91},
	}}
	uc := newTestUsecase(embedder, store, &stubChat{})

	result, err := uc.Retrieve(context.Background(), ragRequest())

	require.NoError(t, err)
	require.NotNil(t, embedder.lastReq)
	assert.Equal(t, "all-MiniLM-L6-v2", embedder.lastReq.Model)
	assert.Equal(t, []string{"What is a vector database?"}, embedder.lastReq.Input.Texts())

	assert.Equal(t, "http://localhost:6333", store.lastURL)
	assert.Equal(t, "docs", store.lastCollection)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, store.lastVector)
	assert.Equal(t, uint64(3), store.lastLimit)
	assert.Equal(t, float32(0.5), store.lastThreshold)

	assert.Equal(t, uint(3), result.Limit)
	assert.Equal(t, float32(0.5), result.ScoreThreshold)
	require.Len(t, result.Points, 1)
	assert.Equal(t, "Vector databases store embeddings.", result.Points[0].Source)
}

func TestRetrieveWithNoMatchesReturnsEmptyPoints(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{1, 0}}}
	uc := newTestUsecase(embedder, &stubStore{}, &stubChat{})

	result, err := uc.Retrieve(context.Background(), ragRequest())

	require.NoError(t, err)
	require.NotNil(t, result.Points)
	assert.Empty(t, result.Points)
}

func TestRetrieveRejectsEmptyMessages(t *testing.T) {
	uc := newTestUsecase(&stubEmbedder{}, &stubStore{}, &stubChat{})

	req := ragRequest()
	req.Messages = nil

	_, err := uc.Retrieve(context.Background(), req)

	assert.ErrorIs(t, err, entity.ErrEmptyMessages)
}

func TestRetrieveRequiresUserMessage(t *testing.T) {
	uc := newTestUsecase(&stubEmbedder{}, &stubStore{}, &stubChat{})

	req := ragRequest()
	req.Messages = []entity.ChatCompletionRequestMessage{
		{Role: entity.RoleSystem, Content: "You are helpful."},
	}

	_, err := uc.Retrieve(context.Background(), req)

	assert.ErrorIs(t, err, entity.ErrEmptyMessages)
}

func TestRetrievePropagatesEmbedderError(t *testing.T) {
	embedErr := errors.New("backend down")
	uc := newTestUsecase(&stubEmbedder{err: embedErr}, &stubStore{}, &stubChat{})

	_, err := uc.Retrieve(context.Background(), ragRequest())

	assert.ErrorIs(t, err, embedErr)
}

func TestChatCompletionsMergesContextIntoSystemMessage(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{1, 0}}}
	store := &stubStore{points: []entity.RagScoredPoint{
		{Source: "Paris is the capital of France.", Score: 0.88},
	}}
	chat := &stubChat{response: &entity.ChatCompletionsResponse{
		ID:     "chatcmpl-1",
		Object: "chat.completion",
	}}
	uc := newTestUsecase(embedder, store, chat)

	req := ragRequest()
	req.Messages = []entity.ChatCompletionRequestMessage{
		{Role: entity.RoleUser, Content: "What is the capital of France?"},
	}

	response, err := uc.ChatCompletions(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "chatcmpl-1", response.ID)

	require.NotNil(t, chat.lastReq)
	require.Len(t, chat.lastReq.Messages, 2)
	assert.Equal(t, entity.RoleSystem, chat.lastReq.Messages[0].Role)
	assert.Contains(t, chat.lastReq.Messages[0].Content, "Paris is the capital of France.")
	assert.Equal(t, "What is the capital of France?", chat.lastReq.Messages[1].Content)
}

func TestChatCompletionsWithoutContextPassesMessagesThrough(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{1, 0}}}
	chat := &stubChat{response: &entity.ChatCompletionsResponse{ID: "chatcmpl-2"}}
	uc := newTestUsecase(embedder, &stubStore{}, chat)

	_, err := uc.ChatCompletions(context.Background(), ragRequest())

	require.NoError(t, err)
	require.Len(t, chat.lastReq.Messages, 1)
	assert.Equal(t, entity.RoleUser, chat.lastReq.Messages[0].Role)
}

func TestIndexUpsertsOnePointPerInput(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{1, 0}, {0, 1}}}
	store := &stubStore{}
	uc := newTestUsecase(embedder, store, &stubChat{})

	req := entity.NewRagEmbeddingRequest(
		[]string{"first chunk", "second chunk"},
		"http://localhost:6333",
		"docs",
	)

	response, err := uc.Index(context.Background(), &req)

	require.NoError(t, err)
	assert.Len(t, response.Data, 2)

	require.Len(t, store.upserted, 2)
	assert.Equal(t, "http://localhost:6333", store.lastURL)
	assert.Equal(t, "docs", store.lastCollection)
	assert.Equal(t, []float64{1, 0}, store.upserted[0].Vector)
	assert.Equal(t, []float64{0, 1}, store.upserted[1].Vector)
	assert.NotEqual(t, store.upserted[0].ID, store.upserted[1].ID)
}

func TestIndexRejectsVectorCountMismatch(t *testing.T) {
	embedder := &stubEmbedder{vectors: [][]float64{{1, 0}}}
	uc := newTestUsecase(embedder, &stubStore{}, &stubChat{})

	req := entity.NewRagEmbeddingRequest([]string{"a", "b"}, "http://localhost:6333", "docs")

	_, err := uc.Index(context.Background(), &req)

	assert.Error(t, err)
}

func TestBuildRetrievalQueryUsesTrailingUserMessages(t *testing.T) {
	messages := []entity.ChatCompletionRequestMessage{
		{Role: entity.RoleSystem, Content: "You are helpful."},
		{Role: entity.RoleUser, Content: "first question"},
		{Role: entity.RoleAssistant, Content: "first answer"},
		{Role: entity.RoleUser, Content: "second question"},
		{Role: entity.RoleUser, Content: "third question"},
	}

	assert.Equal(t, "third question", buildRetrievalQuery(messages, 1))
	assert.Equal(t, "second question\nthird question", buildRetrievalQuery(messages, 2))
	assert.Equal(t, "first question\nsecond question\nthird question", buildRetrievalQuery(messages, 10))
}

func TestMergeRetrievedContextExtendsExistingSystemMessage(t *testing.T) {
	messages := []entity.ChatCompletionRequestMessage{
		{Role: entity.RoleSystem, Content: "You are helpful."},
		{Role: entity.RoleUser, Content: "question"},
	}
	points := []entity.RagScoredPoint{{Source: "some context", Score: 0.7}}

	merged := mergeRetrievedContext(messages, points)

	require.Len(t, merged, 2)
	assert.Contains(t, merged[0].Content, "You are helpful.")
	assert.Contains(t, merged[0].Content, "some context")

	// original slice stays untouched
	assert.Equal(t, "You are helpful.", messages[0].Content)
}
