package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"highfive-service/internal/auth"
	"highfive-service/internal/domain"
)

// identityContextKey — ключ, под которым middleware кладет identity в echo.Context.
const identityContextKey = "identity"

// LoggingMiddleware добавляет структурированное логирование запросов.
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

// RequireAuth — обязательный auth-гейт: запрос без валидного токена или с
// токеном несуществующего пользователя отклоняется с 401, до хендлера дело
// не доходит. Зависимости передаются явно, без глобальных реестров стратегий.
func RequireAuth(tokens *auth.TokenService, users domain.UserRepository, logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveIdentity(c, tokens, users)
			if err != nil {
				if isAuthFailure(err) {
					logger.WithError(err).Warn("Rejecting unauthenticated request")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
				}
				// Сбой хранилища — не auth-отказ, отдаем generic 5xx.
				return err
			}
			c.Set(identityContextKey, user)
			return next(c)
		}
	}
}

// OptionalAuth — необязательный auth-гейт: любой сбой аутентификации лишь
// оставляет запрос без identity, но никогда не прерывает пайплайн.
// Требовательные к identity поля отказывают сами, на своем уровне.
func OptionalAuth(tokens *auth.TokenService, users domain.UserRepository, logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveIdentity(c, tokens, users)
			if err != nil {
				if !errors.Is(err, domain.ErrMissingToken) {
					logger.WithError(err).Debug("Proceeding without identity")
				}
				return next(c)
			}
			c.Set(identityContextKey, user)
			return next(c)
		}
	}
}

// CurrentIdentity возвращает identity запроса или nil.
func CurrentIdentity(c echo.Context) *domain.User {
	if user, ok := c.Get(identityContextKey).(*domain.User); ok {
		return user
	}
	return nil
}

// resolveIdentity — общий шаг обоих гейтов: извлечь bearer-токен,
// проверить подпись, найти активного пользователя по subject-клейму.
func resolveIdentity(c echo.Context, tokens *auth.TokenService, users domain.UserRepository) (*domain.User, error) {
	raw := extractBearerToken(c.Request())
	if raw == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := tokens.Verify(raw)
	if err != nil {
		return nil, err
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := users.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrMissingToken) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrUserNotFound)
}
