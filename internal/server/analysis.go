package server

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jonathan/hiring-assistant/internal/types"
)

// Status thresholds applied to the match score.
const (
	ShortlistScore = 70
	ReviewScore    = 40
)

// Used when the job description names none of the known keywords.
const (
	DefaultScore     = 82
	DefaultReasoning = "The candidate shows strong project experience, though some specific niche skills are missing."
)

// Keywords is the vocabulary scanned by the local skill extractor, in output order.
var Keywords = []string{"python", "react", "typescript", "mongodb", "nodejs", "aws", "docker", "javascript", "sql", "java", "c++"}

// InterviewQuestions is attached to every analysis.
var InterviewQuestions = []string{
	"How do you handle rapid development cycles?",
	"Describe your favorite technical stack component.",
	"How do you ensure code quality in a team?",
	"Tell us about a time you solved a complex logic bug.",
	"What is your approach to learning new frameworks?",
}

// matchKeywords returns the keywords contained in text. Matching is a plain
// substring test on the lowercased text, so "javascript" also matches "java".
func matchKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, k := range Keywords {
		if strings.Contains(lower, k) {
			found = append(found, k)
		}
	}
	return found
}

// ExtractSkills formats each keyword found in the job description as a skill tag.
func ExtractSkills(text string) []string {
	found := matchKeywords(text)
	skills := make([]string, len(found))
	for i, k := range found {
		skills[i] = "💻 " + titleCase(k)
	}
	return skills
}

// Analyze scores a resume by the share of job description keywords it contains.
func Analyze(fileName, jobDescription, resumeText string) *types.AnalysisResult {
	result := &types.AnalysisResult{
		CandidateName:      CandidateName(fileName),
		InterviewQuestions: append([]string(nil), InterviewQuestions...),
	}

	wanted := matchKeywords(jobDescription)
	if len(wanted) == 0 {
		result.Score = DefaultScore
		result.Reasoning = DefaultReasoning
		result.Status = StatusFor(result.Score)
		return result
	}

	have := make(map[string]bool)
	for _, k := range matchKeywords(resumeText) {
		have[k] = true
	}

	var matched, missing []string
	for _, k := range wanted {
		if have[k] {
			matched = append(matched, titleCase(k))
		} else {
			missing = append(missing, titleCase(k))
		}
	}

	result.Score = math.Round(100 * float64(len(matched)) / float64(len(wanted)))
	result.Status = StatusFor(result.Score)
	result.Reasoning = reasoning(matched, missing)
	return result
}

// StatusFor maps a score to the review status shown next to it.
func StatusFor(score float64) string {
	switch {
	case score >= ShortlistScore:
		return "Shortlisted"
	case score >= ReviewScore:
		return "Review"
	default:
		return "Rejected"
	}
}

func reasoning(matched, missing []string) string {
	switch {
	case len(missing) == 0:
		return fmt.Sprintf("The resume covers every skill the role asks for: %s.", strings.Join(matched, ", "))
	case len(matched) == 0:
		return fmt.Sprintf("The resume mentions none of the required skills (%s).", strings.Join(missing, ", "))
	default:
		return fmt.Sprintf("The resume matches %s but does not mention %s.",
			strings.Join(matched, ", "), strings.Join(missing, ", "))
	}
}

// CandidateName derives a display name from a resume file name,
// e.g. "jane_doe-resume.pdf" becomes "Jane Doe Resume".
func CandidateName(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return "Unknown Candidate"
	}
	return titleCase(strings.Join(words, " "))
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest.
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		if prevLetter {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(unicode.ToUpper(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}
