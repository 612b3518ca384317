package auth

import (
	"context"
	"errors"
	"fmt"

	"highfive-service/internal/domain"
)

// Authenticator проверяет пару email/пароль по сохраненным учетным данным.
// Единственный компонент, касающийся криптографического материала паролей.
type Authenticator struct {
	users domain.UserRepository
}

// NewAuthenticator создает новый экземпляр Authenticator.
func NewAuthenticator(users domain.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate возвращает пользователя при совпадении пароля и nil, nil
// при неизвестном email или неверном пароле — "не найдено" и "не совпало"
// не являются ошибками. Ошибкой остаются только сбои хранилища.
//
// Неизвестный email завершает проверку до сравнения хэша. Это различимо
// по времени ответа (известный side channel, зафиксирован сознательно).
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	creds, err := a.users.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if creds.PasswordHash == "" {
		return nil, nil
	}
	if !VerifyPassword(creds.PasswordHash, password) {
		return nil, nil
	}

	user := creds.User
	return &user, nil
}
