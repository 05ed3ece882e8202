package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/homeoremedies/remedy-finder/api/internal/dto"
	"github.com/homeoremedies/remedy-finder/api/internal/entity"
	"github.com/homeoremedies/remedy-finder/api/internal/repository"
)

const defaultHistoryLimit = 20

// HistoryService stores and retrieves recommendation request/response
// pairs for authenticated users.
type HistoryService struct {
	records repository.HistoryRepository
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(records repository.HistoryRepository) *HistoryService {
	return &HistoryService{records: records}
}

// Save persists one completed search for the given user.
func (s *HistoryService) Save(ctx context.Context, userID string, req dto.RecommendRequest, resp dto.RecommendResponse) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	rawReq, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	rawResp, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	record := &entity.SearchRecord{
		UserID:   uid,
		Symptoms: strings.TrimSpace(req.Symptoms),
		Request:  rawReq,
		Response: rawResp,
	}
	return s.records.Insert(ctx, record)
}

// List returns the user's saved searches, newest first.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) ([]dto.HistoryItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.records.ListByUser(ctx, uid, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.HistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, dto.HistoryItem{
			ID:        r.ID.String(),
			Symptoms:  r.Symptoms,
			Request:   r.Request,
			Response:  r.Response,
			CreatedAt: r.CreatedAt,
		})
	}
	return items, nil
}

// Delete removes one saved search owned by the user.
func (s *HistoryService) Delete(ctx context.Context, userID, recordID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}
	rid, err := uuid.Parse(recordID)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}
	return s.records.Delete(ctx, rid, uid)
}
