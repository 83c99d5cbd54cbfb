package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "keyword order", text: "Docker, Python and React", want: []string{"💻 Python", "💻 React", "💻 Docker"}},
		{name: "substring match", text: "JavaScript only", want: []string{"💻 Javascript", "💻 Java"}},
		{name: "symbols", text: "Modern C++", want: []string{"💻 C++"}},
		{name: "none", text: "Forklift operator", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSkills(tt.text)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_NoKnownSkillsUsesDefault(t *testing.T) {
	r := Analyze("ada.pdf", "Looking for a kind person", "anything")
	assert.Equal(t, float64(DefaultScore), r.Score)
	assert.Equal(t, DefaultReasoning, r.Reasoning)
	assert.Equal(t, "Shortlisted", r.Status)
	assert.Len(t, r.InterviewQuestions, 5)
}

func TestAnalyze_Overlap(t *testing.T) {
	r := Analyze("bob.pdf", "python react aws sql", "Python developer")
	assert.Equal(t, float64(25), r.Score)
	assert.Equal(t, "Rejected", r.Status)
	assert.Equal(t, "The resume matches Python but does not mention React, Aws, Sql.", r.Reasoning)

	r = Analyze("bob.pdf", "python", "")
	assert.Equal(t, float64(0), r.Score)
	assert.Contains(t, r.Reasoning, "none of the required skills")
}

func TestAnalyze_QuestionsAreCopied(t *testing.T) {
	r := Analyze("a.pdf", "", "")
	r.InterviewQuestions[0] = "changed"
	assert.Equal(t, "How do you handle rapid development cycles?", InterviewQuestions[0])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "Shortlisted", StatusFor(70))
	assert.Equal(t, "Review", StatusFor(69.5))
	assert.Equal(t, "Review", StatusFor(40))
	assert.Equal(t, "Rejected", StatusFor(39))
}

func TestCandidateName(t *testing.T) {
	assert.Equal(t, "Jane Doe Resume", CandidateName("jane_doe-resume.pdf"))
	assert.Equal(t, "Mary Ann", CandidateName("/tmp/MARY ANN.docx"))
	assert.Equal(t, "Unknown Candidate", CandidateName("__.pdf"))
}
