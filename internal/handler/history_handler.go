package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	middlewarepkg "github.com/homeoremedies/remedy-finder/api/internal/middleware"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
)

// HistoryStore lists and deletes a user's saved searches.
type HistoryStore interface {
	List(ctx context.Context, userID string, limit int) ([]dto.HistoryItem, error)
	Delete(ctx context.Context, userID, recordID string) error
}

// HistoryHandler exposes the saved-search endpoints.
type HistoryHandler struct {
	history HistoryStore
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(history HistoryStore) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List handles GET /history requests.
func (h *HistoryHandler) List(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Error(c, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	items, err := h.history.List(c.Request().Context(), userID, limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load search history")
	}

	return c.JSON(http.StatusOK, dto.HistoryListResponse{Items: items})
}

// Delete handles DELETE /history/:id requests.
func (h *HistoryHandler) Delete(c echo.Context) error {
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	if err := h.history.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return Error(c, http.StatusNotFound, "search record not found")
		}
		return Error(c, http.StatusBadRequest, "unable to delete search record")
	}

	return c.NoContent(http.StatusNoContent)
}
