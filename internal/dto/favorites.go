package dto

import "time"

// SaveFavoriteRequest is the payload for saving a remedy to favorites.
type SaveFavoriteRequest struct {
	Name        string `json:"name"`
	Potency     string `json:"potency"`
	Description string `json:"description"`
	Dosage      string `json:"dosage"`
}

// FavoriteItem is one saved remedy as returned to its owner.
type FavoriteItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Potency     string    `json:"potency"`
	Description string    `json:"description"`
	Dosage      string    `json:"dosage"`
	CreatedAt   time.Time `json:"created_at"`
}

// FavoriteListResponse wraps the saved remedies for a user.
type FavoriteListResponse struct {
	Items []FavoriteItem `json:"items"`
}
