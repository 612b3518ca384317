package auth_test

import (
	"context"
	"testing"

	"highfive-service/internal/auth"
	"highfive-service/internal/domain"
	"highfive-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashedCreds(t *testing.T, user domain.User, password string) *domain.UserCredentials {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.UserCredentials{User: user, PasswordHash: hash}
}

func TestAuthenticator_UnknownEmailReturnsNil(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	users.On("GetCredentialsByEmail", ctx, "nobody@example.com").
		Return(nil, domain.ErrUserNotFound)

	a := auth.NewAuthenticator(users)
	user, err := a.Authenticate(ctx, "nobody@example.com", "whatever")

	assert.NoError(t, err)
	assert.Nil(t, user)
	users.AssertExpectations(t)
}

func TestAuthenticator_WrongPasswordReturnsNil(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	creds := hashedCreds(t, domain.User{ID: 1, Email: "ada@example.com", IsActive: true}, "correct horse")
	users.On("GetCredentialsByEmail", ctx, "ada@example.com").Return(creds, nil)

	a := auth.NewAuthenticator(users)
	user, err := a.Authenticate(ctx, "ada@example.com", "battery staple")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthenticator_CorrectPasswordReturnsUser(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	creds := hashedCreds(t, domain.User{ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace", IsActive: true}, "correct horse")
	users.On("GetCredentialsByEmail", ctx, "ada@example.com").Return(creds, nil)

	a := auth.NewAuthenticator(users)
	user, err := a.Authenticate(ctx, "ada@example.com", "correct horse")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ada Lovelace", user.FullName)
}

func TestAuthenticator_EmptyStoredHashReturnsNil(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	creds := &domain.UserCredentials{User: domain.User{ID: 2, Email: "no-pass@example.com"}}
	users.On("GetCredentialsByEmail", ctx, "no-pass@example.com").Return(creds, nil)

	a := auth.NewAuthenticator(users)
	user, err := a.Authenticate(ctx, "no-pass@example.com", "anything")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthenticator_StoreFailurePropagates(t *testing.T) {
	ctx := context.Background()
	users := &mocks.UserRepository{}
	users.On("GetCredentialsByEmail", ctx, "ada@example.com").
		Return(nil, assert.AnError)

	a := auth.NewAuthenticator(users)
	user, err := a.Authenticate(ctx, "ada@example.com", "correct horse")

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, user)
}
