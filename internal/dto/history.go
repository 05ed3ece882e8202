package dto

import (
	"encoding/json"
	"time"
)

// HistoryItem is one saved search as returned to its owner.
type HistoryItem struct {
	ID        string          `json:"id"`
	Symptoms  string          `json:"symptoms"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

// HistoryListResponse wraps the saved searches for a user.
type HistoryListResponse struct {
	Items []HistoryItem `json:"items"`
}
