package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	"github.com/homeoremedies/remedy-finder/api/internal/entity"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
)

// ErrInvalidFavorite is returned when a favorite is missing its
// identifying fields.
var ErrInvalidFavorite = errors.New("favorite must have a name and potency")

// FavoritesService stores and retrieves the remedies a user saved for
// quick reference.
type FavoritesService struct {
	favorites repository.FavoritesRepository
}

// NewFavoritesService constructs a FavoritesService.
func NewFavoritesService(favorites repository.FavoritesRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// Save persists one remedy for the given user and returns the stored item.
func (s *FavoritesService) Save(ctx context.Context, userID string, req dto.SaveFavoriteRequest) (*dto.FavoriteItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	potency := strings.TrimSpace(req.Potency)
	if name == "" || potency == "" {
		return nil, ErrInvalidFavorite
	}

	favorite := &entity.FavoriteRemedy{
		UserID:      uid,
		Name:        name,
		Potency:     potency,
		Description: strings.TrimSpace(req.Description),
		Dosage:      strings.TrimSpace(req.Dosage),
	}
	if err := s.favorites.Insert(ctx, favorite); err != nil {
		return nil, err
	}

	item := favoriteItem(*favorite)
	return &item, nil
}

// List returns the user's favorites, newest first.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]dto.FavoriteItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	favorites, err := s.favorites.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FavoriteItem, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, favoriteItem(f))
	}
	return items, nil
}

// Delete removes one favorite owned by the user.
func (s *FavoritesService) Delete(ctx context.Context, userID, favoriteID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	fid, err := uuid.Parse(favoriteID)
	if err != nil {
		return fmt.Errorf("invalid favorite id: %w", err)
	}
	return s.favorites.Delete(ctx, fid, uid)
}

func favoriteItem(f entity.FavoriteRemedy) dto.FavoriteItem {
	return dto.FavoriteItem{
		ID:          f.ID.String(),
		Name:        f.Name,
		Potency:     f.Potency,
		Description: f.Description,
		Dosage:      f.Dosage,
		CreatedAt:   f.CreatedAt,
	}
}
