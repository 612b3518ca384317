package domain

import "context"

// User представляет сущность пользователя в системе.
// FullName — производное поле, собирается из имени и фамилии при маппинге строки.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	FullName  string
	Email     string
	Role      string
	City      string
	State     string
	JobTitle  string
	IsActive  bool
}

// UserCredentials — пользователь вместе с хэшем пароля.
// Используется только проверкой учетных данных, наружу хэш не отдается.
type UserCredentials struct {
	User
	PasswordHash string
}

// UserRepository определяет контракт для работы с хранилищем пользователей.
type UserRepository interface {
	// GetByIDs возвращает активных, не удаленных пользователей по набору ID.
	// Результат — map по ключу ID; отсутствующий ключ означает "не найден".
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*User, error)
	// GetActiveByID возвращает активного, не удаленного пользователя по ID.
	GetActiveByID(ctx context.Context, id int64) (*User, error)
	// GetCredentialsByEmail возвращает активного пользователя с хэшем пароля.
	GetCredentialsByEmail(ctx context.Context, email string) (*UserCredentials, error)
	// ListByTeamID возвращает активных участников команды, исключая
	// отозванные членства и удаленных пользователей.
	ListByTeamID(ctx context.Context, teamID int64) ([]*User, error)
}
