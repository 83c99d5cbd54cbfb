package intake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Probe opens a document to confirm it can be parsed. It returns the page
// count for PDFs and 0 for other kinds. Files of KindOther are not opened.
func Probe(path string, kind Kind) (int, error) {
	switch kind {
	case KindPDF:
		return probePDF(path)
	case KindDOCX:
		return 0, probeDOCX(path)
	default:
		return 0, nil
	}
}

func probePDF(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := r.NumPage()
	if pages == 0 {
		return 0, fmt.Errorf("PDF has no pages")
	}
	return pages, nil
}

func probeDOCX(path string) error {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse docx: %w", err)
	}
	defer r.Close()

	text := xmlTag.ReplaceAllString(r.Editable().GetContent(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("docx has no text")
	}
	return nil
}

var xmlTag = regexp.MustCompile(`<[^>]*>`)
