package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	middlewarepkg "github.com/homeoremedies/remedy-finder/api/internal/middleware"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
	"github.com/homeoremedies/remedy-finder/api/internal/service"
)

// FavoritesStore saves, lists and deletes a user's favorite remedies.
type FavoritesStore interface {
	Save(ctx context.Context, userID string, req dto.SaveFavoriteRequest) (*dto.FavoriteItem, error)
	List(ctx context.Context, userID string) ([]dto.FavoriteItem, error)
	Delete(ctx context.Context, userID, favoriteID string) error
}

// FavoritesHandler exposes the favorite-remedy endpoints.
type FavoritesHandler struct {
	favorites FavoritesStore
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(favorites FavoritesStore) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// Save handles POST /favorites requests.
func (h *FavoritesHandler) Save(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.SaveFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	item, err := h.favorites.Save(c.Request().Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFavorite) {
			return Error(c, http.StatusBadRequest, "name and potency are required")
		}
		return Error(c, http.StatusInternalServerError, "unable to save favorite")
	}

	return c.JSON(http.StatusCreated, item)
}

// List handles GET /favorites requests.
func (h *FavoritesHandler) List(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	items, err := h.favorites.List(c.Request().Context(), userID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load favorites")
	}

	return c.JSON(http.StatusOK, dto.FavoriteListResponse{Items: items})
}

// Delete handles DELETE /favorites/:id requests.
func (h *FavoritesHandler) Delete(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	if err := h.favorites.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return Error(c, http.StatusNotFound, "favorite remedy not found")
		}
		return Error(c, http.StatusBadRequest, "unable to delete favorite")
	}

	return c.NoContent(http.StatusNoContent)
}
