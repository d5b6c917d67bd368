package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.Invalid("name is required"), http.StatusBadRequest, "name is required"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"slug taken", fmt.Errorf("product %q: %w", "x", domain.ErrSlugTaken), http.StatusConflict, "slug already exists"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"duplicate order", domain.ErrDuplicateOrder, http.StatusConflict, domain.ErrDuplicateOrder.Error()},
		{"product missing", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"category missing", domain.ErrCategoryNotFound, http.StatusNotFound, "category not found"},
		{"order missing", domain.ErrOrderNotFound, http.StatusNotFound, "order not found"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"transition", fmt.Errorf("%w: Pending -> Shipped", domain.ErrInvalidTransition), http.StatusUnprocessableEntity, "invalid status transition: Pending -> Shipped"},
		{"payment", fmt.Errorf("%w: timeout", domain.ErrPaymentFailed), http.StatusInternalServerError, "checkout failed"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "nope"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body["error"])
			}
		})
	}
}
