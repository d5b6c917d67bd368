package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GuardConfig configures the navigation guard for page routes.
type GuardConfig struct {
	JWTSecret string
	// LoginPath receives unauthenticated visitors. Defaults to "/login".
	LoginPath string
	// HomePath receives signed-in visitors without the required role. Defaults to "/".
	HomePath string
	// Roles allowed through; empty admits any signed-in user.
	Roles []string
}

// Guard redirects instead of failing: no valid session goes to LoginPath and
// a wrong role goes to HomePath. The token is read from the session cookie,
// falling back to the bearer header.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/"
	}
	allowed := make(map[string]struct{}, len(cfg.Roles))
	for _, r := range cfg.Roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				raw = ck.Value
			}
			if raw == "" {
				raw, _ = bearerToken(c.Request())
			}
			if raw == "" {
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}

			id, err := ParseToken(raw, cfg.JWTSecret)
			if err != nil {
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			}
			if len(allowed) > 0 {
				if _, ok := allowed[id.Role]; !ok {
					return c.Redirect(http.StatusFound, cfg.HomePath)
				}
			}

			c.Set(ContextUserID, id.UserID)
			c.Set(ContextEmail, id.Email)
			c.Set(ContextRole, id.Role)
			return next(c)
		}
	}
}
