package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/api/middleware"
)

// DashboardHandler answers the guarded page routes. The Guard middleware has
// already redirected anyone who may not see the area.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Admin godoc
//
// @Summary  Admin dashboard entry
// @Tags     dashboard
// @Produce  json
// @Success  200  {object}  dashboardResponse
// @Success  302  "redirect to /login or /"
// @Router   /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.render(c, "admin")
}

// User godoc
//
// @Summary  User dashboard entry
// @Tags     dashboard
// @Produce  json
// @Success  200  {object}  dashboardResponse
// @Success  302  "redirect to /login"
// @Router   /dashboard/user [get]
func (h *DashboardHandler) User(c echo.Context) error {
	return h.render(c, "user")
}

func (h *DashboardHandler) render(c echo.Context, area string) error {
	userID, role, err := caller(c)
	if err != nil {
		return err
	}
	email, _ := c.Get(middleware.ContextEmail).(string)
	return c.JSON(http.StatusOK, dashboardResponse{Area: area, User: userID, Email: email, Role: role})
}
