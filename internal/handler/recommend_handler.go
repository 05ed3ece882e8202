package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	"github.com/homeoremedies/remedy-finder/api/internal/entity"
	middlewarepkg "github.com/homeoremedies/remedy-finder/api/internal/middleware"
	"github.com/homeoremedies/remedy-finder/api/internal/service"
)

// RemedyRecommender produces validated remedy recommendations.
type RemedyRecommender interface {
	Recommend(ctx context.Context, req dto.RecommendRequest) ([]entity.RemedyRecommendation, error)
}

// StoreLocator finds nearby stores; it degrades instead of failing.
type StoreLocator interface {
	Locate(ctx context.Context, location string) []entity.StoreCandidate
}

// HistorySaver optionally persists completed searches.
type HistorySaver interface {
	Save(ctx context.Context, userID string, req dto.RecommendRequest, resp dto.RecommendResponse) error
}

var validSeverities = map[string]bool{
	"mild":     true,
	"moderate": true,
	"severe":   true,
	"acute":    true,
}

// RecommendHandler is the entry point of the recommendation flow: it
// validates input, joins the engine and the store locator, and maps
// upstream failures to HTTP statuses.
type RecommendHandler struct {
	remedies RemedyRecommender
	stores   StoreLocator
	history  HistorySaver
}

// NewRecommendHandler constructs the handler. history may be nil when
// persistence is not configured.
func NewRecommendHandler(remedies RemedyRecommender, stores StoreLocator, history HistorySaver) *RecommendHandler {
	return &RecommendHandler{remedies: remedies, stores: stores, history: history}
}

// Create handles POST /recommendations.
//
// The model call is mandatory; the store lookup runs only when a
// location is supplied, concurrently with the model call, and its
// failure modes all collapse to "no stores". The response carries a
// localStores key only when at least one store was found.
func (h *RecommendHandler) Create(c echo.Context) error {
	var req dto.RecommendRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Symptoms = strings.TrimSpace(req.Symptoms)
	if req.Symptoms == "" {
		return Error(c, http.StatusBadRequest, "symptoms is required")
	}
	req.Severity = strings.ToLower(strings.TrimSpace(req.Severity))
	if req.Severity != "" && !validSeverities[req.Severity] {
		return Error(c, http.StatusBadRequest, "severity must be one of mild, moderate, severe, acute")
	}

	ctx := c.Request().Context()

	var stores []entity.StoreCandidate
	storesDone := make(chan struct{})
	location := strings.TrimSpace(req.Location)
	if location != "" && h.stores != nil {
		go func() {
			defer close(storesDone)
			stores = h.stores.Locate(ctx, location)
		}()
	} else {
		close(storesDone)
	}

	recommendations, err := h.remedies.Recommend(ctx, req)
	<-storesDone
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRateLimited):
			return Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment.")
		case errors.Is(err, service.ErrPaymentRequired):
			return Error(c, http.StatusPaymentRequired, "AI service requires payment. Please contact support.")
		default:
			log.Printf("recommendation failed: %v", err)
			return Error(c, http.StatusInternalServerError, "failed to generate recommendations")
		}
	}

	resp := dto.RecommendResponse{Recommendations: recommendations}
	if len(stores) > 0 {
		resp.LocalStores = stores
	}

	h.saveHistory(c, req, resp)

	return c.JSON(http.StatusOK, resp)
}

// saveHistory persists the search for authenticated callers. Failures
// are logged and never affect the response.
func (h *RecommendHandler) saveHistory(c echo.Context, req dto.RecommendRequest, resp dto.RecommendResponse) {
	if h.history == nil {
		return
	}
	userID := middlewarepkg.UserIDFromContext(c)
	if userID == "" {
		return
	}
	if err := h.history.Save(c.Request().Context(), userID, req, resp); err != nil {
		log.Printf("save search history for user %s: %v", userID, err)
	}
}
