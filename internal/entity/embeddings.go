package entity

import (
	"encoding/json"
	"fmt"
)

// EmbeddingInput is the input of an embedding request: either a single string
// or a list of strings. The wire form mirrors the shape it was built from.
type EmbeddingInput struct {
	texts  []string
	single bool
}

// NewEmbeddingInput builds a single-string input.
func NewEmbeddingInput(text string) EmbeddingInput {
	return EmbeddingInput{texts: []string{text}, single: true}
}

// NewEmbeddingInputList builds a list input, wrapping the given texts
// verbatim. An empty list is accepted and forwarded as-is.
func NewEmbeddingInputList(texts []string) EmbeddingInput {
	return EmbeddingInput{texts: texts}
}

// Texts returns the input texts regardless of the wire form.
func (in EmbeddingInput) Texts() []string {
	return in.texts
}

func (in EmbeddingInput) MarshalJSON() ([]byte, error) {
	if in.single {
		return json.Marshal(in.texts[0])
	}
	if in.texts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(in.texts)
}

func (in *EmbeddingInput) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*in = NewEmbeddingInput(text)
		return nil
	}
	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		return fmt.Errorf("%w: input must be a string or an array of strings", ErrInvalidFormat)
	}
	*in = NewEmbeddingInputList(texts)
	return nil
}

// EmbeddingRequest asks an embedding service to turn input texts into
// numeric vectors.
type EmbeddingRequest struct {
	Model          string         `json:"model"`
	Input          EmbeddingInput `json:"input"`
	EncodingFormat *string        `json:"encoding_format,omitempty"`
	User           *string        `json:"user,omitempty"`
}

func (r *EmbeddingRequest) UnmarshalJSON(data []byte) error {
	type plain EmbeddingRequest
	aux := struct {
		Model *string         `json:"model"`
		Input *EmbeddingInput `json:"input"`
		*plain
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Model == nil {
		return fmt.Errorf("%w: model", ErrMissingField)
	}
	if aux.Input == nil {
		return fmt.Errorf("%w: input", ErrMissingField)
	}
	r.Model = *aux.Model
	r.Input = *aux.Input
	return nil
}

// EmbeddingsResponse is the embedding service response.
type EmbeddingsResponse struct {
	Object string            `json:"object"`
	Data   []EmbeddingObject `json:"data"`
	Model  string            `json:"model"`
	Usage  Usage             `json:"usage"`
}

// EmbeddingObject is a single embedding vector with its position in the
// input list.
type EmbeddingObject struct {
	Index     uint64    `json:"index"`
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
}
