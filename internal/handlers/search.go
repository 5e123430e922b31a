package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/search"
	"github.com/fordpartsdz/shop/internal/util"
)

type SearchHandler struct {
	Index *search.Index
}

// Search is the fuzzy type-ahead. The exact catalog filter stays on
// /products; this endpoint tolerates typos.
func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 10)
	from, size := util.Calculate(page, size)

	total, products, err := h.Index.Suggest(c.Request().Context(), q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search unavailable")
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
