package models

import "time"

// HistoryRecord is one past analysis kept for the history page.
type HistoryRecord struct {
	ID        string    `json:"id"`
	Nickname  string    `json:"nickname"`
	Score     int       `json:"score"`
	ImageURL  string    `json:"image_url"`
	MemeURL   string    `json:"meme_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
