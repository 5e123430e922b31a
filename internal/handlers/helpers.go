package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/catalog"
	"github.com/fordpartsdz/shop/internal/events"
	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/messages"
	"github.com/fordpartsdz/shop/internal/orders"
	"github.com/fordpartsdz/shop/internal/refdata"
)

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	return uint(id), nil
}

// httpError maps the service-level error taxonomy onto HTTP codes. Unknown
// errors become 500 without leaking driver details to the client.
func httpError(err error) *echo.HTTPError {
	var ste *orders.StateTransitionError
	switch {
	case errors.As(err, &ste):
		return echo.NewHTTPError(http.StatusConflict, ste.Error())
	case errors.Is(err, orders.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrValidation),
		errors.Is(err, orders.ErrValidation),
		errors.Is(err, refdata.ErrValidation),
		errors.Is(err, messages.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, refdata.ErrNotFound),
		errors.Is(err, messages.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrDuplicate),
		errors.Is(err, refdata.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// publish fires a domain event with a bounded timeout. Event loss is logged,
// never surfaced: the request already succeeded.
func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]any) {
	if producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
