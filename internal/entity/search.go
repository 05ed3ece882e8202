package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one stored recommendation request/response pair,
// keyed by the user that made it.
type SearchRecord struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Symptoms  string          `json:"symptoms"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}
