// Package ingestion loads job descriptions from inline text, files or URLs.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace   = regexp.MustCompile(`[ \t\f\v]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalises line endings, trims and collapses whitespace within
// lines and allows at most one blank line between paragraphs. Markdown
// headings and bullet indentation are preserved.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Headings lose their indentation; everything else keeps it.
	if strings.HasPrefix(trimmed, "#") {
		return innerSpace.ReplaceAllString(trimmed, " ")
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if isBullet(trimmed) {
		return indent + trimmed[:2] + innerSpace.ReplaceAllString(trimmed[2:], " ")
	}
	return indent + innerSpace.ReplaceAllString(trimmed, " ")
}

func isBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}
