package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"highfive-service/internal/auth"
	"highfive-service/internal/domain"
	"highfive-service/internal/handler"
	"highfive-service/internal/mocks"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// gateProbe прогоняет запрос через гейт и фиксирует, дошел ли он до хендлера
// и с какой identity.
type gateProbe struct {
	handlerCalled bool
	identity      *domain.User
}

func (p *gateProbe) run(t *testing.T, gate echo.MiddlewareFunc, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := gate(func(c echo.Context) error {
		p.handlerCalled = true
		p.identity = handler.CurrentIdentity(c)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec
}

func issueToken(t *testing.T, tokens *auth.TokenService, user *domain.User) string {
	t.Helper()
	token, err := tokens.Issue(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRequireAuth_NoTokenRejected(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	gate := handler.RequireAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.handlerCalled)
}

func TestRequireAuth_InvalidTokenRejected(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	gate := handler.RequireAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.handlerCalled)
}

func TestRequireAuth_UnknownUserRejected(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	users.On("GetActiveByID", mock.Anything, int64(7)).Return(nil, domain.ErrUserNotFound)
	gate := handler.RequireAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, issueToken(t, tokens, &domain.User{ID: 7, Email: "gone@example.com"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.handlerCalled)
}

func TestRequireAuth_ActiveUserProceeds(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	user := &domain.User{ID: 7, Email: "ada@example.com", IsActive: true}
	users.On("GetActiveByID", mock.Anything, int64(7)).Return(user, nil)
	gate := handler.RequireAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, issueToken(t, tokens, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.handlerCalled)
	require.NotNil(t, probe.identity)
	assert.Equal(t, int64(7), probe.identity.ID)
}

func TestOptionalAuth_NoTokenProceedsWithoutIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	gate := handler.OptionalAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.handlerCalled)
	assert.Nil(t, probe.identity)
}

func TestOptionalAuth_InvalidTokenProceedsWithoutIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	gate := handler.OptionalAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, "Bearer not-a-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.handlerCalled)
	assert.Nil(t, probe.identity)
}

func TestOptionalAuth_UnknownUserProceedsWithoutIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	users.On("GetActiveByID", mock.Anything, int64(7)).Return(nil, domain.ErrUserNotFound)
	gate := handler.OptionalAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, issueToken(t, tokens, &domain.User{ID: 7, Email: "gone@example.com"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.handlerCalled)
	assert.Nil(t, probe.identity)
}

func TestOptionalAuth_ActiveUserProceedsWithIdentity(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", 0)
	users := &mocks.UserRepository{}
	user := &domain.User{ID: 7, Email: "ada@example.com", IsActive: true}
	users.On("GetActiveByID", mock.Anything, int64(7)).Return(user, nil)
	gate := handler.OptionalAuth(tokens, users, quietLogger())

	probe := &gateProbe{}
	rec := probe.run(t, gate, issueToken(t, tokens, user))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.handlerCalled)
	require.NotNil(t, probe.identity)
	assert.Equal(t, "ada@example.com", probe.identity.Email)
}
