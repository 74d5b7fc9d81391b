package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingInputWireForms(t *testing.T) {
	tests := []struct {
		name  string
		input EmbeddingInput
		want  string
	}{
		{
			name:  "single string",
			input: NewEmbeddingInput("Hello, world!"),
			want:  `"Hello, world!"`,
		},
		{
			name:  "list of strings",
			input: NewEmbeddingInputList([]string{"one", "two"}),
			want:  `["one","two"]`,
		},
		{
			name:  "empty list",
			input: NewEmbeddingInputList(nil),
			want:  `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEmbeddingInputUnmarshal(t *testing.T) {
	var in EmbeddingInput
	require.NoError(t, json.Unmarshal([]byte(`"Hello, world!"`), &in))
	assert.Equal(t, []string{"Hello, world!"}, in.Texts())

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &in))
	assert.Equal(t, []string{"a", "b"}, in.Texts())

	err := json.Unmarshal([]byte(`42`), &in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestEmbeddingRequestOmitsUnsetFields(t *testing.T) {
	req := EmbeddingRequest{
		Model: "nomic-embed-text-v1.5",
		Input: NewEmbeddingInput("hello"),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Equal(t, `{"model":"nomic-embed-text-v1.5","input":"hello"}`, string(data))
}

func TestEmbeddingRequestRoundTrip(t *testing.T) {
	req := EmbeddingRequest{
		Model:          "nomic-embed-text-v1.5",
		Input:          NewEmbeddingInputList([]string{"a", "b"}),
		EncodingFormat: ptr(DefaultEncodingFormat),
		User:           ptr("alice"),
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded EmbeddingRequest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, req, decoded)
}

func TestEmbeddingRequestDeserializeMissingField(t *testing.T) {
	var req EmbeddingRequest
	err := json.Unmarshal([]byte(`{"input":"hello"}`), &req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "model")

	err = json.Unmarshal([]byte(`{"model":"m"}`), &req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "input")
}
