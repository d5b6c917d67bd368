package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/ports"
)

// maxWebhookBody matches the payload ceiling the payment processor documents.
const maxWebhookBody = 65536

// CheckoutHandler starts hosted payment sessions and receives their callbacks.
type CheckoutHandler struct {
	service ports.CheckoutService
}

func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Checkout creates a hosted payment session for the cart. No order is
// recorded here; the client places it after the redirect.
//
// @Summary      Start checkout
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Cart lines"
// @Success      200   {object}  checkoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]ports.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.CheckoutItem{Name: it.Name, Price: it.Price, Quantity: it.Quantity})
	}

	session, err := h.service.InitiateCheckout(c.Request().Context(), items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutResponse{URL: session.URL, SessionID: session.ID})
}

// Webhook receives signed payment notifications.
//
// @Summary      Payment webhook
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Payload signature"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  errorResponse
// @Router       /checkout/webhook [post]
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	if err := h.service.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
