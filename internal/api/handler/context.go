package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/api/middleware"
	"github.com/shopfront/storefront/internal/core/domain"
)

// caller extracts the identity injected by the Auth middleware and fails fast
// before any service call when it is absent.
func caller(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	role, _ = c.Get(middleware.ContextRole).(string)
	if userID == "" || role == "" {
		return "", "", domain.ErrUnauthorized
	}
	return userID, role, nil
}

// sessionCookie carries the token for page navigation, where the Guard
// middleware cannot rely on an Authorization header.
func sessionCookie(c echo.Context, token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	}
}
