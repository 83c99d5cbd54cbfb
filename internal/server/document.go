package server

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	xmlEntities  = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// ExtractText returns the plain text of a .pdf or .docx resume. Any other
// extension yields ErrUnsupportedFile. A readable document with no text
// returns an empty string.
func ExtractText(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" && ext != ".docx" {
		return "", &ErrUnsupportedFile{Extension: ext}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &ErrUnreadableDocument{Name: name, Cause: err}
	}

	var text string
	if ext == ".pdf" {
		text, err = pdfText(data)
	} else {
		text, err = docxText(data)
	}
	if err != nil {
		return "", &ErrUnreadableDocument{Name: name, Cause: err}
	}
	return strings.TrimSpace(text), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil || text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close() //nolint:errcheck

	content := paragraphEnd.ReplaceAllString(doc.Editable().GetContent(), "\n")
	content = xmlEntities.Replace(xmlTag.ReplaceAllString(content, ""))

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
