package types

import "strconv"

// AnalysisResult is the server-computed analysis of one resume.
// It is never mutated once received.
type AnalysisResult struct {
	CandidateName      string   `json:"candidateName"`
	Score              float64  `json:"score"`
	Status             string   `json:"status"`
	Reasoning          string   `json:"reasoning"`
	InterviewQuestions []string `json:"interviewQuestions"`
}

// ClampedScore returns the score limited to the 0-100 range used for score bars.
func (r *AnalysisResult) ClampedScore() float64 {
	return max(0, min(100, r.Score))
}

// ScoreLabel formats the score as it is displayed next to the bar, e.g. "82%".
func (r *AnalysisResult) ScoreLabel() string {
	return strconv.FormatFloat(r.Score, 'f', -1, 64) + "%"
}

// UploadResponse wraps the analysis returned by the resume upload endpoint.
type UploadResponse struct {
	Resume *AnalysisResult `json:"resume"`
}

// ExtractSkillsRequest is the body of the skill extraction endpoint.
type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

// ExtractSkillsResponse carries the ordered skill tags extracted from a job description.
type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}
