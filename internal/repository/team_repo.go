package repository

import (
	"context"
	"database/sql"
	"fmt"

	"highfive-service/internal/domain"
)

// TeamRepository реализует взаимодействие с данными команд в PostgreSQL.
// Команды хранятся в таблице groups (историческое имя схемы).
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository создает новый экземпляр TeamRepository.
func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &TeamRepository{db: db}
}

// GetByIDs возвращает команды по набору ID без фильтра по активности:
// точечный запрос отдает и неактивную команду.
func (r *TeamRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nickname, active FROM groups WHERE id = ANY($1)`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get teams: %w", err)
	}
	defer rows.Close()

	teams := make(map[int64]*domain.Team, len(ids))
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams[team.ID] = team
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return teams, nil
}

// ListActive возвращает все активные команды в естественном порядке выдачи.
func (r *TeamRepository) ListActive(ctx context.Context) ([]*domain.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nickname, active FROM groups WHERE active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read teams: %w", err)
	}

	return teams, nil
}

func scanTeam(row scanner) (*domain.Team, error) {
	var team domain.Team
	if err := row.Scan(&team.ID, &team.Name, &team.IsActive); err != nil {
		return nil, err
	}
	return &team, nil
}
