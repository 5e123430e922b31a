package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/events"
	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/messages"
	"github.com/fordpartsdz/shop/internal/models"
)

type MessageHandler struct {
	Messages *messages.Service
	Producer *events.Producer
}

func (h *MessageHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "message.create")

	var m models.Message
	if err := c.Bind(&m); err != nil {
		l.Warn("create_message_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	m.ID = 0
	m.Read = false

	if err := h.Messages.Create(ctx, &m); err != nil {
		l.Warn("create_message_failed", "error", err)
		return httpError(err)
	}

	publish(c, h.Producer, "message_events", fmt.Sprint(m.ID), map[string]any{
		"type":      "message_received",
		"messageID": m.ID,
	})

	l.Info("create_message_success", "messageID", m.ID)
	return c.JSON(http.StatusCreated, &m)
}

func (h *MessageHandler) List(c echo.Context) error {
	out, err := h.Messages.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	m, err := h.Messages.MarkRead(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Messages.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
