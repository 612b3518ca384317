package repository

import (
	"context"
	"database/sql"
	"fmt"

	"highfive-service/internal/domain"
)

// HighFiveRepository реализует взаимодействие с данными high fives в PostgreSQL.
type HighFiveRepository struct {
	db *sql.DB
}

// NewHighFiveRepository создает новый экземпляр HighFiveRepository.
func NewHighFiveRepository(db *sql.DB) domain.HighFiveRepository {
	return &HighFiveRepository{db: db}
}

// ListByRecipientID возвращает high fives, полученные пользователем.
func (r *HighFiveRepository) ListByRecipientID(ctx context.Context, userID int64) ([]*domain.HighFive, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id FROM high_fives WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get high fives: %w", err)
	}
	defer rows.Close()

	highFives := make([]*domain.HighFive, 0)
	for rows.Next() {
		var hf domain.HighFive
		if err := rows.Scan(&hf.ID, &hf.RecipientID); err != nil {
			return nil, fmt.Errorf("failed to scan high five: %w", err)
		}
		highFives = append(highFives, &hf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read high fives: %w", err)
	}

	return highFives, nil
}
