package entity

// RagChatCompletionRequestBuilder constructs a RagChatCompletionsRequest
// incrementally. Every setter takes the builder by value and returns the
// updated copy, so an in-progress request is never shared between callers.
type RagChatCompletionRequestBuilder struct {
	req RagChatCompletionsRequest
}

// NewRagChatCompletionRequestBuilder seeds the builder with the given
// messages and retrieval target plus placeholder defaults for everything
// else.
func NewRagChatCompletionRequestBuilder(
	messages []ChatCompletionRequestMessage,
	qdrantURL, qdrantCollectionName string,
	limit uint64,
) RagChatCompletionRequestBuilder {
	return RagChatCompletionRequestBuilder{
		req: RagChatCompletionsRequest{
			ChatModel:            ptr(PlaceholderChatModel),
			Messages:             messages,
			EmbeddingModel:       PlaceholderEmbeddingModel,
			EncodingFormat:       ptr(DefaultEncodingFormat),
			QdrantURL:            qdrantURL,
			QdrantCollectionName: qdrantCollectionName,
			Limit:                limit,
			Temperature:          ptr(1.0),
			TopP:                 ptr(1.0),
			NChoice:              ptr(uint64(1)),
			Stream:               ptr(false),
			MaxTokens:            ptr(uint64(1024)),
			PresencePenalty:      ptr(0.0),
			FrequencyPenalty:     ptr(0.0),
			ContextWindow:        ptr(uint64(1)),
		},
	}
}

// WithSampling sets the chosen sampling parameter and forces the other one to
// its neutral value of 1.0: the two strategies are mutually exclusive.
func (b RagChatCompletionRequestBuilder) WithSampling(sampling ChatCompletionRequestSampling) RagChatCompletionRequestBuilder {
	temperature, topP := 1.0, 1.0
	switch s := sampling.(type) {
	case Temperature:
		temperature = float64(s)
	case TopP:
		topP = float64(s)
	}
	b.req.Temperature = ptr(temperature)
	b.req.TopP = ptr(topP)
	return b
}

// WithNChoices sets how many chat completion choices to generate for each
// input message. Values below 1 are clamped to 1.
func (b RagChatCompletionRequestBuilder) WithNChoices(n uint64) RagChatCompletionRequestBuilder {
	if n < 1 {
		n = 1
	}
	b.req.NChoice = ptr(n)
	return b
}

func (b RagChatCompletionRequestBuilder) WithStream(flag bool) RagChatCompletionRequestBuilder {
	b.req.Stream = ptr(flag)
	return b
}

func (b RagChatCompletionRequestBuilder) WithStop(stop []string) RagChatCompletionRequestBuilder {
	b.req.Stop = stop
	return b
}

// WithMaxTokens sets the maximum number of tokens to generate. Values below 1
// are clamped to 16.
func (b RagChatCompletionRequestBuilder) WithMaxTokens(maxTokens uint64) RagChatCompletionRequestBuilder {
	if maxTokens < 1 {
		maxTokens = 16
	}
	b.req.MaxTokens = ptr(maxTokens)
	return b
}

// WithPresencePenalty sets the presence penalty. Number between -2.0 and 2.0.
func (b RagChatCompletionRequestBuilder) WithPresencePenalty(penalty float64) RagChatCompletionRequestBuilder {
	b.req.PresencePenalty = ptr(penalty)
	return b
}

// WithFrequencyPenalty sets the frequency penalty. Number between -2.0
// and 2.0.
func (b RagChatCompletionRequestBuilder) WithFrequencyPenalty(penalty float64) RagChatCompletionRequestBuilder {
	b.req.FrequencyPenalty = ptr(penalty)
	return b
}

func (b RagChatCompletionRequestBuilder) WithLogitsBias(bias map[string]float64) RagChatCompletionRequestBuilder {
	b.req.LogitBias = bias
	return b
}

func (b RagChatCompletionRequestBuilder) WithUser(user string) RagChatCompletionRequestBuilder {
	b.req.User = ptr(user)
	return b
}

func (b RagChatCompletionRequestBuilder) WithContextWindow(contextWindow uint64) RagChatCompletionRequestBuilder {
	b.req.ContextWindow = ptr(contextWindow)
	return b
}

// Build returns the finished request. No validation is performed here;
// semantic checks are the concern of the caller or the inference engine.
func (b RagChatCompletionRequestBuilder) Build() RagChatCompletionsRequest {
	return b.req
}

func ptr[T any](v T) *T {
	return &v
}
