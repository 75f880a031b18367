package domain

// MatchAnalysis is the result of scoring a resume against a vacancy.
type MatchAnalysis struct {
	Score          int      `json:"score"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
}

// CoverLetter is a generated application letter with its match score.
type CoverLetter struct {
	Content string `json:"content"`
	Score   int    `json:"score"`
}

// ClampScore limits a match score to the 0-100 range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
