package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/catalog"
	"github.com/fordpartsdz/shop/internal/events"
	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/models"
	"github.com/fordpartsdz/shop/internal/search"
)

type ProductHandler struct {
	Catalog  *catalog.Service
	Producer *events.Producer
	Index    *search.Index
}

// GetProducts is the storefront catalog query. All of keyword, category,
// year, model, fuelType and pageNumber are optional.
func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	f := catalog.Filter{
		Keyword:  c.QueryParam("keyword"),
		Category: c.QueryParam("category"),
		Model:    c.QueryParam("model"),
		FuelType: c.QueryParam("fuelType"),
	}
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			l.Warn("get_products_failed", "status", 400, "reason", "year is not an integer")
			return echo.NewHTTPError(http.StatusBadRequest, "year is not an integer")
		}
		f.Year = year
	}
	page := parseIntDefault(c.QueryParam("pageNumber"), 1)

	result, err := h.Catalog.Query(ctx, f, page)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) GetFeatured(c echo.Context) error {
	ctx := c.Request().Context()

	limit := parseIntDefault(c.QueryParam("limit"), 8)
	items, err := h.Catalog.Featured(ctx, limit)
	if err != nil {
		logging.FromContext(ctx).Error("get_featured_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	p, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var p models.Product
	if err := c.Bind(&p); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	p.ID = 0

	if err := h.Catalog.Create(ctx, &p); err != nil {
		l.Error("create_product_failed", "error", err)
		return httpError(err)
	}

	h.reindex(c, &p)
	publish(c, h.Producer, "product_events", fmt.Sprint(p.ID), map[string]any{
		"type":      "product_created",
		"productID": p.ID,
		"oemNumber": p.OEMNumber,
	})

	l.Info("create_product_success", "productID", p.ID)
	return c.JSON(http.StatusCreated, &p)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req catalog.UpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Catalog.Update(ctx, id, req)
	if err != nil {
		l.Error("patch_product_failed", "productID", id, "error", err)
		return httpError(err)
	}

	h.reindex(c, p)
	publish(c, h.Producer, "product_events", fmt.Sprint(p.ID), map[string]any{
		"type":      "product_updated",
		"productID": p.ID,
	})

	l.Info("patch_product_success", "productID", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Catalog.Delete(ctx, id); err != nil {
		l.Error("delete_product_failed", "productID", id, "error", err)
		return httpError(err)
	}

	if h.Index != nil {
		if err := h.Index.RemoveProduct(ctx, id); err != nil {
			l.Error("search_remove_failed", "productID", id, "error", err)
		}
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) reindex(c echo.Context, p *models.Product) {
	if h.Index == nil {
		return
	}
	if err := h.Index.IndexProduct(c.Request().Context(), p); err != nil {
		logging.FromContext(c.Request().Context()).Error("search_index_failed", "productID", p.ID, "error", err)
	}
}
