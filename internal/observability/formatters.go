// Package observability renders workspace state for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/hiring-assistant/internal/intake"
	"github.com/jonathan/hiring-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barCells is the number of cells in a score bar
	barCells = 10
	// nameWidth is the candidate column width in the results table
	nameWidth = 24
)

// Placeholder texts.
const (
	SkillsPlaceholder     = "Skills will appear here..."
	SkillsExtracting      = "Extracting skills..."
	QueuePlaceholder      = "Drag & drop resumes here"
	ResultsPlaceholder    = "No resumes analyzed yet. Upload to see results!"
	ResultsProcessing     = "Processing resumes..."
	QuestionsSectionTitle = "Suggested Interview Questions"
)

// Printer writes human-readable workspace output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintNotice prints a one-line workflow message.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintNotice(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(p.out, "» %s\n", msg)
}

// PrintSkills prints the extracted skill tags.
func (p *Printer) PrintSkills(skills []string, extracting bool) {
	var content string
	switch {
	case extracting:
		content = SkillsExtracting
	case len(skills) == 0:
		content = SkillsPlaceholder
	default:
		content = strings.Join(packTags(skills, boxWidth-4), "\n")
	}
	p.printBox("EXTRACTED SKILLS", content)
}

// PrintQueue prints the files waiting to be uploaded.
func (p *Printer) PrintQueue(files []intake.PendingFile, dragging bool) {
	title := "PENDING FILES"
	if dragging {
		title += " (drop to add)"
	}
	if len(files) == 0 {
		p.printBox(title, QueuePlaceholder)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d files selected\n\n", len(files)))
	for i, f := range files {
		sb.WriteString(fmt.Sprintf("✓ %s  (%s, %s)", f.Name, humanSize(f.Size), f.Source))
		if i < len(files)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, sb.String())
}

// PrintResults prints the ranked results table. Rows are numbered from 1 for
// use with the show command.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResults(results []types.AnalysisResult, uploading bool) {
	header := fmt.Sprintf("%-3s %-*s %-*s %6s  %s", "#", nameWidth, "Candidate", barCells+2, "Match Score", "", "Status")
	fmt.Fprintln(p.out, header)
	fmt.Fprintln(p.out, strings.Repeat("─", utf8.RuneCountInString(header)+8))

	if len(results) == 0 {
		if uploading {
			fmt.Fprintln(p.out, ResultsProcessing)
		} else {
			fmt.Fprintln(p.out, ResultsPlaceholder)
		}
		return
	}

	for i := range results {
		r := &results[i]
		fmt.Fprintf(p.out, "%-3d %-*s %s %6s  %s\n",
			i+1, nameWidth, truncate(r.CandidateName, nameWidth), ScoreBar(r.Score), r.ScoreLabel(), r.Status)
	}
	if uploading {
		fmt.Fprintln(p.out, "Analyzing...")
	}
}

// PrintAnalysis prints the detail view for one result.
func (p *Printer) PrintAnalysis(r types.AnalysisResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %s %s\n", ScoreBar(r.Score), r.ScoreLabel()))
	sb.WriteString(fmt.Sprintf("Status: %s\n\n", r.Status))

	sb.WriteString("Reasoning\n")
	for _, line := range wrap(r.Reasoning, boxWidth-6) {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString("\n" + QuestionsSectionTitle + "\n")
	if len(r.InterviewQuestions) == 0 {
		sb.WriteString("  (none)")
	}
	for i, q := range r.InterviewQuestions {
		prefix := fmt.Sprintf("%d. ", i+1)
		for j, line := range wrap(q, boxWidth-6-len(prefix)) {
			if j == 0 {
				sb.WriteString("  " + prefix + line)
			} else {
				sb.WriteString("  " + strings.Repeat(" ", len(prefix)) + line)
			}
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("%s's Analysis", r.CandidateName), strings.TrimSuffix(sb.String(), "\n"))
}

// ScoreBar renders score (0-100, clamped) as a bracketed bar of ten cells.
func ScoreBar(score float64) string {
	clamped := max(0, min(100, score))
	filled := int(clamped/100*barCells + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled) + "]"
}

func packTags(tags []string, width int) []string {
	var lines []string
	var line string
	for _, tag := range tags {
		tag = "[" + tag + "]"
		switch {
		case line == "":
			line = tag
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(tag) <= width:
			line += " " + tag
		default:
			lines = append(lines, line)
			line = tag
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
