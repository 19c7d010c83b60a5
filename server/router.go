package server

import (
	"context"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"invoice-service/api"
	"invoice-service/config"
	"invoice-service/invoices"
	"invoice-service/metrics"
	"invoice-service/shipments"
	"net/http"
)

type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Ping      func(ctx context.Context) error
	Invoices  invoices.Operations
	Shipments shipments.Operations
}

func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		api.RequestID(),
		api.AccessLog(deps.Logger.Named("http")),
		metrics.Middleware(),
		api.Timeout(deps.Config.HTTP.RequestTimeout),
	)

	group := r.Group("/api")
	invoices.RegisterRoutes(group, invoices.NewHandler(deps.Invoices))
	shipments.RegisterRoutes(group, shipments.NewHandler(deps.Shipments))

	management := r.Group("/management")
	management.GET("/health", health(deps.Ping))
	management.GET("/info", info(deps.Config))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.NoRoute(func(c *gin.Context) {
		api.ErrorResponse(c, http.StatusNotFound, "notfound", "no route for "+c.Request.URL.Path)
	})

	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "DOWN",
				"components": gin.H{
					"db": gin.H{"status": "DOWN", "error": err.Error()},
				},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "UP",
			"components": gin.H{
				"db": gin.H{"status": "UP"},
			},
		})
	}
}

func info(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"activeProfiles": []string{cfg.Profile},
			"version":        cfg.Version,
		})
	}
}
