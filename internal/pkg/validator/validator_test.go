package validator

import (
	"testing"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileStoreConfig{
		Dir:         "archives",
		MaxFileSize: 1024,
	})
}

func TestValidateRagChatRequest(t *testing.T) {
	v := newTestValidator()

	err := v.ValidateRagChatRequest(&entity.RagChatCompletionsRequest{})
	assert.ErrorIs(t, err, entity.ErrEmptyMessages)

	err = v.ValidateRagChatRequest(&entity.RagChatCompletionsRequest{
		Messages: []entity.ChatCompletionRequestMessage{{Role: entity.RoleUser, Content: "hi"}},
	})
	assert.NoError(t, err)
}

func TestValidateChunksRequest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     entity.ChunksRequest
		wantErr error
	}{
		{
			name: "valid txt",
			req:  entity.ChunksRequest{ID: "file_1", Filename: "doc.txt", ChunkCapacity: 100},
		},
		{
			name: "valid docx",
			req:  entity.ChunksRequest{ID: "file_1", Filename: "doc.docx", ChunkCapacity: 100},
		},
		{
			name:    "empty id",
			req:     entity.ChunksRequest{Filename: "doc.txt", ChunkCapacity: 100},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "empty filename",
			req:     entity.ChunksRequest{ID: "file_1", ChunkCapacity: 100},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "zero capacity",
			req:     entity.ChunksRequest{ID: "file_1", Filename: "doc.txt"},
			wantErr: entity.ErrInvalidFormat,
		},
		{
			name:    "unsupported extension",
			req:     entity.ChunksRequest{ID: "file_1", Filename: "doc.exe", ChunkCapacity: 100},
			wantErr: entity.ErrInvalidExtension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateChunksRequest(&tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_report_v2.txt", SanitizeFilename("my report (v2).txt"))
	assert.Equal(t, "doc.txt", SanitizeFilename("../../doc.txt"))
}
