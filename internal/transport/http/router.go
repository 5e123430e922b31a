package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/fordpartsdz/shop/internal/handlers"
	"github.com/fordpartsdz/shop/internal/middleware/auth"
)

type Deps struct {
	ProductHandler *handlers.ProductHandler
	OrderHandler   *handlers.OrderHandler
	MessageHandler *handlers.MessageHandler
	RefDataHandler *handlers.RefDataHandler
	SearchHandler  *handlers.SearchHandler
	Auth           *auth.Verifier
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/featured", d.ProductHandler.GetFeatured)
	products.GET("/:id", d.ProductHandler.GetProduct)

	if d.SearchHandler != nil && d.SearchHandler.Index != nil {
		v1.GET("/search", d.SearchHandler.Search)
	}

	v1.GET("/categories", d.RefDataHandler.ListCategories)
	v1.GET("/carmodels", d.RefDataHandler.ListCarModels)

	v1.POST("/orders", d.OrderHandler.Checkout)
	v1.GET("/orders/:id", d.OrderHandler.GetOrder)

	v1.POST("/messages", d.MessageHandler.Create)

	admin := v1.Group("/admin", d.Auth.AdminOnly)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.GET("/orders", d.OrderHandler.ListOrders)
	admin.PUT("/orders/:id/accept", d.OrderHandler.Accept)
	admin.PUT("/orders/:id/decline", d.OrderHandler.Decline)
	admin.PUT("/orders/:id/deliver", d.OrderHandler.MarkDelivered)
	admin.PUT("/orders/:id/pay", d.OrderHandler.MarkPaid)

	admin.GET("/messages", d.MessageHandler.List)
	admin.PUT("/messages/:id/read", d.MessageHandler.MarkRead)
	admin.DELETE("/messages/:id", d.MessageHandler.Delete)

	admin.POST("/categories", d.RefDataHandler.CreateCategory)
	admin.DELETE("/categories/:id", d.RefDataHandler.DeleteCategory)
	admin.POST("/categories/bulk-delete", d.RefDataHandler.BulkDeleteCategories)

	admin.POST("/carmodels", d.RefDataHandler.CreateCarModel)
	admin.DELETE("/carmodels/:id", d.RefDataHandler.DeleteCarModel)
	admin.POST("/carmodels/bulk-delete", d.RefDataHandler.BulkDeleteCarModels)
}
