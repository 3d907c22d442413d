package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/leadpilot/leadpilot/pkg/api/errors"
	"github.com/leadpilot/leadpilot/pkg/auth"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	"github.com/leadpilot/leadpilot/pkg/models"
)

// AuthHandler handles the shared-password session endpoints
type AuthHandler struct {
	password   string
	secret     string
	sessionTTL time.Duration
	metrics    *metrics.Metrics
	validator  *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(password, secret string, sessionTTL time.Duration, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		password:   password,
		secret:     secret,
		sessionTTL: sessionTTL,
		metrics:    m,
		validator:  validator.New(),
	}
}

// Login godoc
// @Summary Log in with the shared dashboard password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]string "Session established"
// @Failure 401 {object} models.ErrorResponse "Wrong password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.ValidationError(c, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	if !auth.CheckPassword(req.Password, h.password) {
		h.metrics.RecordLoginAttempt(false)
		return errors.UnauthorizedError(c)
	}

	token, err := auth.GenerateSession(h.secret, h.sessionTTL)
	if err != nil {
		return errors.InternalError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.metrics.RecordLoginAttempt(true)
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string "Session cleared"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
