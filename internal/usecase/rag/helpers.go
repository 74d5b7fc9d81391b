package rag

import (
	"fmt"
	"strings"

	"github.com/edgerag/rag-gateway/internal/entity"
)

// buildRetrievalQuery joins the content of the last `window` user messages,
// oldest first, into a single query string.
func buildRetrievalQuery(messages []entity.ChatCompletionRequestMessage, window uint64) string {
	var parts []string
	for i := len(messages) - 1; i >= 0 && uint64(len(parts)) < window; i-- {
		if messages[i].Role != entity.RoleUser {
			continue
		}
		if content := strings.TrimSpace(messages[i].Content); content != "" {
			parts = append(parts, content)
		}
	}

	// collected newest first, restore conversation order
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}

	return strings.Join(parts, "\n")
}

const contextPromptHeader = "Use the following pieces of context to answer the user's question.\nIf you don't know the answer, just say that you don't know, don't try to make up an answer."

// mergeRetrievedContext folds the retrieved points into the conversation as
// system context. An existing leading system message is extended, otherwise a
// new one is prepended. Without any points the messages pass through as-is.
func mergeRetrievedContext(messages []entity.ChatCompletionRequestMessage, points []entity.RagScoredPoint) []entity.ChatCompletionRequestMessage {
	if len(points) == 0 {
		return messages
	}

	sources := make([]string, 0, len(points))
	for _, p := range points {
		sources = append(sources, p.Source)
	}
	context := fmt.Sprintf("%s\n----------------\n%s", contextPromptHeader, strings.Join(sources, "\n\n"))

	if len(messages) > 0 && messages[0].Role == entity.RoleSystem {
		merged := make([]entity.ChatCompletionRequestMessage, len(messages))
		copy(merged, messages)
		merged[0].Content = merged[0].Content + "\n" + context
		return merged
	}

	merged := make([]entity.ChatCompletionRequestMessage, 0, len(messages)+1)
	merged = append(merged, entity.ChatCompletionRequestMessage{
		Role:    entity.RoleSystem,
		Content: context,
	})
	merged = append(merged, messages...)

	return merged
}
