package extractor

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

const pdfFileExtension = ".pdf"

// PDFExtractor extracts the plain text of a PDF document.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

func (e *PDFExtractor) FileExtension() string {
	return pdfFileExtension
}
