// Package auth gates the dashboard behind a single shared-secret password
// and a signed session cookie.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// SessionCookie is the cookie carrying the signed session marker.
const SessionCookie = "leadpilot_session"

// SessionClaims are the JWT claims of a dashboard session.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CheckPassword compares a supplied password against the configured shared
// secret. When the configured value is a bcrypt hash it verifies against the
// hash; otherwise it does a constant-time plain comparison. An empty
// configured secret rejects everything.
func CheckPassword(supplied, configured string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}

// HashPassword produces a bcrypt hash suitable for DASHBOARD_PASSWORD.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// GenerateSession signs a new session marker.
func GenerateSession(secret string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		Role: "operator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSession validates a session marker and returns its claims.
func ValidateSession(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid session")
}

// Middleware rejects requests lacking a valid session cookie. Every dashboard
// view sits behind this gate.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Session required.",
				})
			}
			if _, err := ValidateSession(cookie.Value, secret); err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Session expired or invalid.",
				})
			}
			return next(c)
		}
	}
}
