package models

import "time"

// AnalysisResult is the scoring backend's verdict for one screenshot.
type AnalysisResult struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
	Reasoning   string   `json:"reasoning"`
	ImageURL    string   `json:"image_url"`
	MemeURL     string   `json:"meme_url,omitempty"`
	Nickname    string   `json:"nickname"`
}

// WinningScore is the lowest score shown with the "W RIZZ" badge.
const WinningScore = 70

// IsW reports whether the score earns the "W RIZZ" badge.
func (r AnalysisResult) IsW() bool {
	return r.Score >= WinningScore
}

// StoredResult is an AnalysisResult parked in the result cache.
type StoredResult struct {
	ID        string         `json:"id"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
