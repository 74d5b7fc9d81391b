package entity

// Placeholder model identifiers. The gateway substitutes these when a caller
// does not name a concrete model; the serving layer resolves them to whatever
// model is actually loaded. Centralized here so a deployment can change the
// placeholder in one place.
const (
	PlaceholderChatModel      = "dummy-chat-model"
	PlaceholderEmbeddingModel = "dummy-embedding-model"
)

// DefaultEncodingFormat is the embedding encoding format assumed when the
// request leaves it unset.
const DefaultEncodingFormat = "float"
