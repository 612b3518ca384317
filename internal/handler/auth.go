package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"highfive-service/internal/auth"
	"highfive-service/internal/domain"
)

// jwtCookieMaxAge — время жизни cookie плейграунда: 7 дней в секундах.
const jwtCookieMaxAge = 7 * 24 * 60 * 60

// AuthHandler обрабатывает HTTP-запросы логина и защищенные маршруты.
type AuthHandler struct {
	*BaseHandler
	authenticator *auth.Authenticator
	tokens        *auth.TokenService
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(authenticator *auth.Authenticator, tokens *auth.TokenService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		authenticator: authenticator,
		tokens:        tokens,
	}
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// email принимает учетную запись из любого из двух полей формы.
func (r loginRequest) email() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type userPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
}

func toUserPayload(user *domain.User) userPayload {
	return userPayload{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		City:      user.City,
		State:     user.State,
		JobTitle:  user.JobTitle,
	}
}

// Login проверяет учетные данные и отдает подписанный токен в теле ответа.
// Ответ 401 не уточняет, какой именно фактор не подошел.
func (h *AuthHandler) Login(c echo.Context) error {
	user, err := h.verifyCredentials(c, "login")
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logRequest(c, "login").WithError(err).Error("Failed to issue token")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"jwt":     token,
		"success": true,
		"user":    toUserPayload(user),
	})
}

// PlaygroundLogin — тот же credential check, но токен уезжает в HttpOnly
// cookie для интерактивного плейграунда, с редиректом на его страницу.
func (h *AuthHandler) PlaygroundLogin(c echo.Context) error {
	user, err := h.verifyCredentials(c, "playground_login")
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.logRequest(c, "playground_login").WithError(err).Error("Failed to issue token")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    token,
		MaxAge:   jwtCookieMaxAge,
		HttpOnly: true,
		Path:     "/",
	})
	return c.Redirect(http.StatusFound, "/")
}

// Protected — пример маршрута за обязательным auth-гейтом.
func (h *AuthHandler) Protected(c echo.Context) error {
	return c.String(http.StatusOK, "i am very private")
}

// LoginPage отдает HTML-форму логина для плейграунда.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.HTML(http.StatusOK, loginPageHTML)
}

func (h *AuthHandler) verifyCredentials(c echo.Context, operation string) (*domain.User, error) {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.email() == "" || req.Password == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "email/password required")
	}

	logEntry := h.logRequest(c, operation).WithField("email", req.email())

	user, err := h.authenticator.Authenticate(c.Request().Context(), req.email(), req.Password)
	if err != nil {
		logEntry.WithError(err).Error("Credential check failed")
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "credential check failed")
	}
	if user == nil {
		logEntry.Warn("Invalid credentials")
		return nil, nil
	}

	logEntry.Info("Authentication succeeded")
	return user, nil
}
