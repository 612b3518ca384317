package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"highfive-service/internal/domain"
)

// userColumns — колонки, нужные для маппинга строки users в domain.User.
const userColumns = `id, first_name, last_name, email, role, city, state, job_title, active`

// UserRepository реализует взаимодействие с данными пользователей в PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository создает новый экземпляр UserRepository.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &UserRepository{db: db}
}

// GetByIDs возвращает активных, не удаленных пользователей по набору ID.
// Результат — map по ID: порядок строк из базы не имеет значения,
// отсутствующий ключ означает "не найден".
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE id = ANY($1) AND active = TRUE AND deleted_at IS NULL`,
		ids)
	if err != nil {
		return nil, fmt.Errorf("failed to batch get users: %w", err)
	}
	defer rows.Close()

	users := make(map[int64]*domain.User, len(ids))
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// GetActiveByID возвращает активного, не удаленного пользователя по ID.
func (r *UserRepository) GetActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE id = $1 AND active = TRUE AND deleted_at IS NULL`,
		id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetCredentialsByEmail возвращает активного пользователя вместе с хэшем
// пароля. Используется только проверкой учетных данных.
func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.UserCredentials, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+`, COALESCE(encrypted_password, '') FROM users
		 WHERE email = $1 AND active = TRUE AND deleted_at IS NULL`,
		email)

	var (
		creds     domain.UserCredentials
		firstName sql.NullString
		lastName  sql.NullString
		role      sql.NullString
		city      sql.NullString
		state     sql.NullString
		jobTitle  sql.NullString
	)
	err := row.Scan(&creds.ID, &firstName, &lastName, &creds.Email,
		&role, &city, &state, &jobTitle, &creds.IsActive, &creds.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user credentials: %w", err)
	}

	creds.FirstName = firstName.String
	creds.LastName = lastName.String
	creds.FullName = fullName(firstName.String, lastName.String)
	creds.Role = role.String
	creds.City = city.String
	creds.State = state.String
	creds.JobTitle = jobTitle.String

	return &creds, nil
}

// ListByTeamID возвращает активных участников команды. Отозванные членства,
// удаленные и неактивные пользователи и неактивные команды исключаются.
func (r *UserRepository) ListByTeamID(ctx context.Context, teamID int64) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.role, u.city, u.state, u.job_title, u.active
		 FROM users u
		 JOIN user_groups ug ON ug.user_id = u.id
		 JOIN groups g ON g.id = ug.group_id
		 WHERE g.id = $1
		   AND g.active = TRUE
		   AND u.active = TRUE
		   AND u.deleted_at IS NULL
		   AND ug.deleted_at IS NULL`,
		teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read team users: %w", err)
	}

	return users, nil
}

// scanner покрывает *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanUser маппит строку users в domain.User, собирая FullName из частей.
func scanUser(row scanner) (*domain.User, error) {
	var (
		user      domain.User
		firstName sql.NullString
		lastName  sql.NullString
		role      sql.NullString
		city      sql.NullString
		state     sql.NullString
		jobTitle  sql.NullString
	)
	err := row.Scan(&user.ID, &firstName, &lastName, &user.Email,
		&role, &city, &state, &jobTitle, &user.IsActive)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.FullName = fullName(firstName.String, lastName.String)
	user.Role = role.String
	user.City = city.String
	user.State = state.String
	user.JobTitle = jobTitle.String

	return &user, nil
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
