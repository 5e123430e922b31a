package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/cart"
	"github.com/fordpartsdz/shop/internal/catalog"
	"github.com/fordpartsdz/shop/internal/events"
	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/middleware/auth"
	"github.com/fordpartsdz/shop/internal/models"
	"github.com/fordpartsdz/shop/internal/orders"
)

type OrderHandler struct {
	Orders   *orders.Service
	Catalog  *catalog.Service
	Producer *events.Producer
}

type checkoutLine struct {
	ProductID uint `json:"product_id"`
	Qty       uint `json:"qty"`
}

type checkoutRequest struct {
	Items           []checkoutLine         `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// Checkout rebuilds the client's cart from live products and materializes an
// order from it. Guest checkout is allowed; a bearer token only attaches a
// user id.
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	basket := cart.New()
	for _, line := range req.Items {
		p, err := h.Catalog.Get(ctx, line.ProductID)
		if err != nil {
			l.Warn("checkout_failed", "reason", "unknown product", "productID", line.ProductID)
			return httpError(err)
		}
		basket.AddItem(p, line.Qty)
	}

	var userID *uint
	if id, ok := auth.UserID(c); ok {
		userID = &id
	}

	order, err := h.Orders.Place(ctx, basket, req.ShippingAddress, req.PaymentMethod, userID)
	if err != nil {
		l.Warn("checkout_failed", "cartID", basket.ID, "error", err)
		return httpError(err)
	}

	// The cart ID is the session correlation key: it ties the order event back
	// to the checkout that produced it.
	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"cartID":  basket.ID.String(),
		"total":   order.TotalPrice,
		"wilaya":  order.ShipWilaya,
	})

	l.Info("checkout_success", "orderID", order.ID, "cartID", basket.ID, "total", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	o, err := h.Orders.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 20)
	offset := (page - 1) * size

	out, err := h.Orders.List(ctx, size, offset)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Accept(c echo.Context) error {
	return h.applyTransition(c, "order_accepted", h.Orders.Accept)
}

func (h *OrderHandler) Decline(c echo.Context) error {
	return h.applyTransition(c, "order_cancelled", h.Orders.Decline)
}

func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	return h.applyTransition(c, "order_delivered", h.Orders.MarkDelivered)
}

func (h *OrderHandler) MarkPaid(c echo.Context) error {
	return h.applyTransition(c, "order_paid", h.Orders.MarkPaid)
}

func (h *OrderHandler) applyTransition(c echo.Context, event string, fn func(context.Context, uint) (*models.Order, error)) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order."+event)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	o, err := fn(ctx, id)
	if err != nil {
		l.Warn("transition_failed", "orderID", id, "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(o.ID), map[string]any{
		"type":    event,
		"orderID": o.ID,
		"status":  o.Status,
	})

	l.Info("transition_success", "orderID", o.ID, "status", o.Status)
	return c.JSON(http.StatusOK, o)
}
