package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/homeoremedies/remedy-finder/api/internal/entity"
)

// ErrFavoriteNotFound indicates no favorite matched the id/owner pair.
var ErrFavoriteNotFound = errors.New("favorite remedy not found")

// FavoritesRepository persists a user's saved remedies.
type FavoritesRepository interface {
	Insert(ctx context.Context, favorite *entity.FavoriteRemedy) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.FavoriteRemedy, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// PGXFavoritesRepository implements FavoritesRepository using pgx.
type PGXFavoritesRepository struct {
	pool pgxPool
}

// NewPGXFavoritesRepository wires a pgx backed favorites repository.
func NewPGXFavoritesRepository(pool *pgxpool.Pool) *PGXFavoritesRepository {
	return &PGXFavoritesRepository{pool: pool}
}

// Insert stores one favorite and fills in its generated fields.
func (r *PGXFavoritesRepository) Insert(ctx context.Context, favorite *entity.FavoriteRemedy) error {
	if favorite == nil {
		return fmt.Errorf("favorite remedy is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO favorite_remedies (user_id, name, potency, description, dosage)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, favorite.UserID, favorite.Name, favorite.Potency, favorite.Description, favorite.Dosage)

	if err := row.Scan(&favorite.ID, &favorite.CreatedAt); err != nil {
		return fmt.Errorf("insert favorite remedy: %w", err)
	}
	return nil
}

// ListByUser returns the user's favorites, newest first.
func (r *PGXFavoritesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.FavoriteRemedy, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, name, potency, description, dosage, created_at
        FROM favorite_remedies
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite remedies: %w", err)
	}
	defer rows.Close()

	return scanFavoriteRemedies(rows)
}

// Delete removes a favorite only when it belongs to the given user.
func (r *PGXFavoritesRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorite_remedies WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite remedy: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func scanFavoriteRemedies(rows pgx.Rows) ([]entity.FavoriteRemedy, error) {
	var favorites []entity.FavoriteRemedy
	for rows.Next() {
		var favorite entity.FavoriteRemedy
		if err := rows.Scan(&favorite.ID, &favorite.UserID, &favorite.Name, &favorite.Potency,
			&favorite.Description, &favorite.Dosage, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite remedy: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite remedies: %w", err)
	}
	return favorites, nil
}
