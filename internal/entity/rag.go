package entity

import (
	"encoding/json"
	"fmt"
)

// RagEmbeddingRequest couples an embedding request with the vector store it
// should be indexed into.
type RagEmbeddingRequest struct {
	EmbeddingRequest     EmbeddingRequest `json:"embeddings"`
	QdrantURL            string           `json:"url"`
	QdrantCollectionName string           `json:"collection_name"`
}

// NewRagEmbeddingRequest builds a request around the given input texts with
// the placeholder embedding model, no encoding format and no user set.
func NewRagEmbeddingRequest(input []string, qdrantURL, qdrantCollectionName string) RagEmbeddingRequest {
	return RagEmbeddingRequest{
		EmbeddingRequest: EmbeddingRequest{
			Model: PlaceholderEmbeddingModel,
			Input: NewEmbeddingInputList(input),
		},
		QdrantURL:            qdrantURL,
		QdrantCollectionName: qdrantCollectionName,
	}
}

// RagEmbeddingRequestFrom wraps a caller-supplied embedding request
// unchanged, attaching the vector store target.
func RagEmbeddingRequestFrom(req EmbeddingRequest, qdrantURL, qdrantCollectionName string) RagEmbeddingRequest {
	return RagEmbeddingRequest{
		EmbeddingRequest:     req,
		QdrantURL:            qdrantURL,
		QdrantCollectionName: qdrantCollectionName,
	}
}

func (r *RagEmbeddingRequest) UnmarshalJSON(data []byte) error {
	aux := struct {
		EmbeddingRequest     *EmbeddingRequest `json:"embeddings"`
		QdrantURL            *string           `json:"url"`
		QdrantCollectionName *string           `json:"collection_name"`
	}{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.EmbeddingRequest == nil:
		return fmt.Errorf("%w: embeddings", ErrMissingField)
	case aux.QdrantURL == nil:
		return fmt.Errorf("%w: url", ErrMissingField)
	case aux.QdrantCollectionName == nil:
		return fmt.Errorf("%w: collection_name", ErrMissingField)
	}
	r.EmbeddingRequest = *aux.EmbeddingRequest
	r.QdrantURL = *aux.QdrantURL
	r.QdrantCollectionName = *aux.QdrantCollectionName
	return nil
}

// RagChatCompletionsRequest is a chat-completion request extended with the
// parameters of the retrieval step: which model embeds the query, which
// vector store and collection to search, and how many points to retrieve.
type RagChatCompletionsRequest struct {
	ChatModel *string                        `json:"chat_model,omitempty"`
	Messages  []ChatCompletionRequestMessage `json:"messages"`

	// Retrieval parameters
	EmbeddingModel       string  `json:"embedding_model"`
	EncodingFormat       *string `json:"encoding_format,omitempty"`
	QdrantURL            string  `json:"qdrant_url"`
	QdrantCollectionName string  `json:"qdrant_collection_name"`
	Limit                uint64  `json:"limit"`

	// Sampling parameters, mirroring the plain chat-completion request
	Temperature      *float64            `json:"temperature,omitempty"`
	TopP             *float64            `json:"top_p,omitempty"`
	NChoice          *uint64             `json:"n_choice,omitempty"`
	Stream           *bool               `json:"stream,omitempty"`
	StreamOptions    *StreamOptions      `json:"stream_options,omitempty"`
	Stop             []string            `json:"stop,omitempty"`
	MaxTokens        *uint64             `json:"max_tokens,omitempty"`
	PresencePenalty  *float64            `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64            `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]float64  `json:"logit_bias,omitempty"`
	User             *string             `json:"user,omitempty"`
	ResponseFormat   *ChatResponseFormat `json:"response_format,omitempty"`
	Tools            []Tool              `json:"tools"`
	ToolChoice       *ToolChoice         `json:"tool_choice"`

	// Number of trailing user messages to use for building the retrieval
	// query. Defaults to 1 when absent.
	ContextWindow *uint64 `json:"context_window,omitempty"`
}

func (r *RagChatCompletionsRequest) UnmarshalJSON(data []byte) error {
	type plain RagChatCompletionsRequest
	aux := struct {
		Messages             *[]ChatCompletionRequestMessage `json:"messages"`
		EmbeddingModel       *string                         `json:"embedding_model"`
		QdrantURL            *string                         `json:"qdrant_url"`
		QdrantCollectionName *string                         `json:"qdrant_collection_name"`
		Limit                *uint64                         `json:"limit"`
		*plain
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Messages == nil:
		return fmt.Errorf("%w: messages", ErrMissingField)
	case aux.EmbeddingModel == nil:
		return fmt.Errorf("%w: embedding_model", ErrMissingField)
	case aux.QdrantURL == nil:
		return fmt.Errorf("%w: qdrant_url", ErrMissingField)
	case aux.QdrantCollectionName == nil:
		return fmt.Errorf("%w: qdrant_collection_name", ErrMissingField)
	case aux.Limit == nil:
		return fmt.Errorf("%w: limit", ErrMissingField)
	}
	r.Messages = *aux.Messages
	r.EmbeddingModel = *aux.EmbeddingModel
	r.QdrantURL = *aux.QdrantURL
	r.QdrantCollectionName = *aux.QdrantCollectionName
	r.Limit = *aux.Limit
	return nil
}

// AsChatCompletionsRequest projects the request onto a plain chat-completion
// request for the inference engine. Every chat and sampling field is copied
// across unchanged; the retrieval parameters are dropped because the target
// schema has no slot for them. The legacy function-call fields stay unset:
// RAG requests use the tool-call mechanism exclusively.
func (r *RagChatCompletionsRequest) AsChatCompletionsRequest() ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:            r.ChatModel,
		Messages:         r.Messages,
		Temperature:      r.Temperature,
		TopP:             r.TopP,
		NChoice:          r.NChoice,
		Stream:           r.Stream,
		StreamOptions:    r.StreamOptions,
		Stop:             r.Stop,
		MaxTokens:        r.MaxTokens,
		PresencePenalty:  r.PresencePenalty,
		FrequencyPenalty: r.FrequencyPenalty,
		LogitBias:        r.LogitBias,
		User:             r.User,
		Functions:        nil,
		FunctionCall:     nil,
		ResponseFormat:   r.ResponseFormat,
		ToolChoice:       r.ToolChoice,
		Tools:            r.Tools,
		ContextWindow:    r.ContextWindow,
	}
}

// RagChatCompletionsRequestFrom derives a RAG request from a plain
// chat-completion request and the given retrieval target. The embedding model
// is filled with the placeholder id and the encoding format is left absent.
// Any legacy function-call data on the plain request is discarded.
func RagChatCompletionsRequestFrom(req ChatCompletionRequest, qdrantURL, qdrantCollectionName string, limit uint64) RagChatCompletionsRequest {
	return RagChatCompletionsRequest{
		ChatModel:            req.Model,
		Messages:             req.Messages,
		EmbeddingModel:       PlaceholderEmbeddingModel,
		EncodingFormat:       nil,
		QdrantURL:            qdrantURL,
		QdrantCollectionName: qdrantCollectionName,
		Limit:                limit,
		Temperature:          req.Temperature,
		TopP:                 req.TopP,
		NChoice:              req.NChoice,
		Stream:               req.Stream,
		StreamOptions:        req.StreamOptions,
		Stop:                 req.Stop,
		MaxTokens:            req.MaxTokens,
		PresencePenalty:      req.PresencePenalty,
		FrequencyPenalty:     req.FrequencyPenalty,
		LogitBias:            req.LogitBias,
		User:                 req.User,
		ResponseFormat:       req.ResponseFormat,
		ToolChoice:           req.ToolChoice,
		Tools:                req.Tools,
		ContextWindow:        req.ContextWindow,
	}
}
