package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/refdata"
)

type RefDataHandler struct {
	RefData *refdata.Service
}

type nameRequest struct {
	Name string `json:"name"`
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

func (h *RefDataHandler) ListCategories(c echo.Context) error {
	out, err := h.RefData.ListCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RefDataHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.RefData.CreateCategory(ctx, req.Name)
	if err != nil {
		logging.FromContext(ctx).Warn("create_category_failed", "name", req.Name, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *RefDataHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.RefData.DeleteCategory(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RefDataHandler) BulkDeleteCategories(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.RefData.DeleteCategories(c.Request().Context(), req.IDs); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "categories deleted"})
}

func (h *RefDataHandler) ListCarModels(c echo.Context) error {
	out, err := h.RefData.ListCarModels(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RefDataHandler) CreateCarModel(c echo.Context) error {
	ctx := c.Request().Context()

	var req nameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	m, err := h.RefData.CreateCarModel(ctx, req.Name)
	if err != nil {
		logging.FromContext(ctx).Warn("create_car_model_failed", "name", req.Name, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *RefDataHandler) DeleteCarModel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.RefData.DeleteCarModel(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RefDataHandler) BulkDeleteCarModels(c echo.Context) error {
	var req bulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := h.RefData.DeleteCarModels(c.Request().Context(), req.IDs); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "car models deleted"})
}
