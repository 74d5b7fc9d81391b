package extractor

import (
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/document"
)

const docxFileExtension = ".docx"

// DOCXExtractor extracts the paragraph text of a Word document.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (e *DOCXExtractor) Extract(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (e *DOCXExtractor) FileExtension() string {
	return docxFileExtension
}
