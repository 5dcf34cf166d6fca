package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/handlers"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/middleware"
)

// HealthChecker reports whether backing services are reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderDeskFacade, health HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		if err := health.HealthCheck(c.Request.Context()); err != nil {
			logger.Warn("health check failed", slog.String("error", err.Error()))
			c.Status(http.StatusServiceUnavailable)
			return
		}
		c.Status(http.StatusOK)
	})

	referenceHandler := handlers.NewReferenceHandler(facade)
	draftHandler := handlers.NewDraftHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.ForwardToken())
	api.GET("/reference", referenceHandler.Reference)
	api.GET("/products", referenceHandler.Products)

	drafts := api.Group("/drafts")
	drafts.POST("", draftHandler.Create)
	drafts.GET("/recover/:key", draftHandler.Recover)
	drafts.GET("/:id", draftHandler.Get)
	drafts.DELETE("/:id", draftHandler.Discard)
	drafts.PUT("/:id/form", draftHandler.UpdateForm)
	drafts.PUT("/:id/discount", draftHandler.Discount)
	drafts.POST("/:id/calculate", orderHandler.Calculate)
	drafts.POST("/:id/submit", orderHandler.Submit)

	tables := drafts.Group("/:id/tables")
	tables.POST("", draftHandler.AddTable)
	tables.DELETE("/:table", draftHandler.RemoveTable)
	tables.PUT("/:table/selection", draftHandler.Select)
	tables.POST("/:table/doors", draftHandler.AddDoor)
	tables.PATCH("/:table/doors/:door", draftHandler.UpdateDoor)
	tables.DELETE("/:table/doors/:door", draftHandler.RemoveDoor)
	tables.POST("/:table/doors/:door/components", draftHandler.AddComponent)
	tables.PATCH("/:table/doors/:door/components/:kind/:index", draftHandler.UpdateComponent)

	return engine
}
