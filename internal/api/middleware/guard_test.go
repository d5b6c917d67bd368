package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runGuard(t *testing.T, cfg GuardConfig, prepare func(r *http.Request)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/admin", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Guard(cfg)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_NoSessionRedirectsToLogin(t *testing.T) {
	rec, called := runGuard(t, GuardConfig{JWTSecret: "secret", Roles: []string{"ADMIN"}}, nil)
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_InvalidSessionRedirectsToLogin(t *testing.T) {
	rec, _ := runGuard(t, GuardConfig{JWTSecret: "secret"}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	})
	if rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %q", rec.Header().Get("Location"))
	}
}

func TestGuard_WrongRoleRedirectsHome(t *testing.T) {
	token := signToken(t, "secret", userClaims("USER"))
	rec, called := runGuard(t, GuardConfig{JWTSecret: "secret", Roles: []string{"ADMIN"}}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_AllowsMatchingRole(t *testing.T) {
	token := signToken(t, "secret", userClaims("ADMIN"))

	rec, called := runGuard(t, GuardConfig{JWTSecret: "secret", Roles: []string{"ADMIN"}}, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got called=%v code=%d", called, rec.Code)
	}
}

func TestGuard_AnySignedInUserWhenNoRoles(t *testing.T) {
	token := signToken(t, "secret", userClaims("USER"))
	_, called := runGuard(t, GuardConfig{JWTSecret: "secret"}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	if !called {
		t.Fatalf("expected signed-in user to pass")
	}
}
