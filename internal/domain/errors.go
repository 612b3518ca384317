package domain

import "errors"

// Domain errors (для бизнес-логики).
//
// "Не найдено" на уровне резолверов — это значение (null/пустой список),
// а не ошибка: сентинелы ниже живут на границе репозиториев и middleware
// и до GraphQL-ответа в таком виде не доходят.
var (
	// Auth errors
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidToken           = errors.New("invalid token")
	ErrMissingToken           = errors.New("missing bearer token")

	// Lookup errors
	ErrUserNotFound = errors.New("user not found")
	ErrTeamNotFound = errors.New("team not found")

	// Known gap: high_fives хранит только получателя, автор не отслеживается.
	ErrHighFiveAuthorUnknown = errors.New("high five author is not tracked")
)
