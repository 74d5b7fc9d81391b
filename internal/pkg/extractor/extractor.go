package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edgerag/rag-gateway/internal/entity"
)

// Extractor pulls plain text out of a stored document.
type Extractor interface {
	Extract(path string) (string, error)
	FileExtension() string
}

// ForFilename picks the extractor matching the file extension.
func ForFilename(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md":
		return NewPlainExtractor(), nil
	case ".docx":
		return NewDOCXExtractor(), nil
	case ".pdf":
		return NewPDFExtractor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidExtension, ext)
	}
}

// PlainExtractor reads text files verbatim.
type PlainExtractor struct{}

func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

func (e *PlainExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func (e *PlainExtractor) FileExtension() string {
	return ".txt"
}
