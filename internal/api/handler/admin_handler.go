package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/ports"
)

// AdminHandler serves back-office order management and headline stats.
type AdminHandler struct {
	orders ports.OrderService
	admin  ports.AdminService
}

func NewAdminHandler(orders ports.OrderService, admin ports.AdminService) *AdminHandler {
	return &AdminHandler{orders: orders, admin: admin}
}

// ListOrders returns every order with its owner resolved.
//
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.OrderWithOwner
// @Failure      401  {object}  errorResponse
// @Router       /admin/orders [get]
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.ListAllOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// RecentOrders returns the latest orders for the dashboard.
//
// @Summary      Recent orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RecentOrder
// @Failure      401  {object}  errorResponse
// @Router       /admin/orders/recent [get]
func (h *AdminHandler) RecentOrders(c echo.Context) error {
	orders, err := h.orders.RecentOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus advances an order one step along
// Pending → Processing → Shipped → Delivered.
//
// @Summary      Update order status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.orders.UpdateOrderStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Stats returns product, order and user counts.
//
// @Summary      Back-office stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
