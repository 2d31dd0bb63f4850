package models

// LeaderboardEntry as returned by GET /leaderboard/
type LeaderboardEntry struct {
	Nickname    string  `json:"nickname"`
	AvgRizz     float64 `json:"avg_rizz"`
	TotalScores int     `json:"total_scores"`
}

// LeaderboardResponse wraps the backend leaderboard payload
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// RankedEntry for leaderboard display
type RankedEntry struct {
	Rank        int     `json:"rank"`
	Nickname    string  `json:"nickname"`
	Score       float64 `json:"score"`
	TotalScores int     `json:"total_scores"`
	ScoreLabel  string  `json:"score_label"`
	CountLabel  string  `json:"count_label,omitempty"`
	TopThree    bool    `json:"top_three"`
}

// ShowCount is true when the entry has more than one score behind it.
func (e RankedEntry) ShowCount() bool {
	return e.TotalScores > 1
}
