package entity

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRemedy is a remedy a user saved for quick reference.
type FavoriteRemedy struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Potency     string    `json:"potency"`
	Description string    `json:"description"`
	Dosage      string    `json:"dosage"`
	CreatedAt   time.Time `json:"created_at"`
}
