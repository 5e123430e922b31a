package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fordpartsdz/shop/internal/catalog"
	"github.com/fordpartsdz/shop/internal/config"
	"github.com/fordpartsdz/shop/internal/db"
	"github.com/fordpartsdz/shop/internal/events"
	"github.com/fordpartsdz/shop/internal/handlers"
	"github.com/fordpartsdz/shop/internal/logging"
	"github.com/fordpartsdz/shop/internal/messages"
	"github.com/fordpartsdz/shop/internal/middleware/auth"
	"github.com/fordpartsdz/shop/internal/orders"
	"github.com/fordpartsdz/shop/internal/refdata"
	"github.com/fordpartsdz/shop/internal/search"
	"github.com/fordpartsdz/shop/internal/shipping"
	httpserver "github.com/fordpartsdz/shop/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	ctx := context.Background()
	gdb, err := db.Open(ctx, configuration.DSN())
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer, err = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("kafka disabled: KAFKA_ADDRESS not set")
	}

	var index *search.Index
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		index = &search.Index{ES: esClient, Name: configuration.ES_INDEX}
	} else {
		logger.Warn("search disabled: ES_URL not set")
	}

	catalogSvc := &catalog.Service{DB: gdb}
	orderSvc := &orders.Service{DB: gdb, ShippingPrice: shipping.Lookup}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), logger)))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		ProductHandler: &handlers.ProductHandler{Catalog: catalogSvc, Producer: producer, Index: index},
		OrderHandler:   &handlers.OrderHandler{Orders: orderSvc, Catalog: catalogSvc, Producer: producer},
		MessageHandler: &handlers.MessageHandler{Messages: &messages.Service{DB: gdb}, Producer: producer},
		RefDataHandler: &handlers.RefDataHandler{RefData: &refdata.Service{DB: gdb}},
		SearchHandler:  &handlers.SearchHandler{Index: index},
		Auth:           &auth.Verifier{Secret: []byte(configuration.AUTH_SECRET)},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("listening", "addr", configuration.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
