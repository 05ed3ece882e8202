package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homeoremedies/remedy-finder/api/internal/entity"
)

// ErrRecordNotFound indicates no saved search matched the id/owner pair.
var ErrRecordNotFound = errors.New("search record not found")

// HistoryRepository persists recommendation request/response pairs.
type HistoryRepository interface {
	Insert(ctx context.Context, record *entity.SearchRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.SearchRecord, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// PGXHistoryRepository implements HistoryRepository using pgx.
type PGXHistoryRepository struct {
	pool pgxPool
}

// NewPGXHistoryRepository wires a pgx backed history repository.
func NewPGXHistoryRepository(pool *pgxpool.Pool) *PGXHistoryRepository {
	return &PGXHistoryRepository{pool: pool}
}

// Insert stores one search record and fills in its generated fields.
func (r *PGXHistoryRepository) Insert(ctx context.Context, record *entity.SearchRecord) error {
	if record == nil {
		return fmt.Errorf("search record is nil")
	}

	request := record.Request
	if len(request) == 0 {
		request = json.RawMessage("{}")
	}
	response := record.Response
	if len(response) == 0 {
		response = json.RawMessage("{}")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO search_history (user_id, symptoms, request, response)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, record.UserID, record.Symptoms, request, response)

	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		return fmt.Errorf("insert search record: %w", err)
	}
	return nil
}

// ListByUser returns the user's saved searches, newest first.
func (r *PGXHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.SearchRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, symptoms, request, response, created_at
        FROM search_history
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer rows.Close()

	return scanSearchRecords(rows)
}

// Delete removes a record only when it belongs to the given user.
func (r *PGXHistoryRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM search_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete search record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func scanSearchRecords(rows pgx.Rows) ([]entity.SearchRecord, error) {
	var records []entity.SearchRecord
	for rows.Next() {
		var (
			record   entity.SearchRecord
			request  []byte
			response []byte
		)
		if err := rows.Scan(&record.ID, &record.UserID, &record.Symptoms, &request, &response, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}
		record.Request = json.RawMessage(request)
		record.Response = json.RawMessage(response)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search history: %w", err)
	}
	return records, nil
}
