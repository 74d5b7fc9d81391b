package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/entity"
)

// AllowedExtensions lists the document types the chunking pipeline can
// extract text from.
var AllowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
}

// Validator validates gateway requests at the HTTP boundary. The schema
// types themselves stay policy-free; everything here is service-level
// semantics.
type Validator struct {
	cfg config.FileStoreConfig
}

func NewValidator(cfg config.FileStoreConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateRagChatRequest checks the parts of a RAG chat request the gateway
// itself depends on. Sampling ranges are left to the inference engine.
func (v *Validator) ValidateRagChatRequest(req *entity.RagChatCompletionsRequest) error {
	if len(req.Messages) == 0 {
		return entity.ErrEmptyMessages
	}
	return nil
}

// ValidateUpload validates a single file upload
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return entity.ErrMissingField
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %s (allowed: txt, md, pdf, docx)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateChunksRequest validates a chunking request against the stored
// document constraints.
func (v *Validator) ValidateChunksRequest(req *entity.ChunksRequest) error {
	if req.ID == "" {
		return fmt.Errorf("%w: id", entity.ErrMissingField)
	}
	if req.Filename == "" {
		return fmt.Errorf("%w: filename", entity.ErrMissingField)
	}
	if req.ChunkCapacity == 0 {
		return fmt.Errorf("%w: chunk_capacity must be at least 1", entity.ErrInvalidFormat)
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %s (allowed: txt, md, pdf, docx)", entity.ErrInvalidExtension, ext)
	}

	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
