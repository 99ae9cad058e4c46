package route

import (
	"net/http"

	"github.com/bassista/go_sitework/internal/api/middleware"
	"github.com/bassista/go_sitework/internal/app"
	"github.com/bassista/go_sitework/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the bridge engine. Every request under the API group
// carries the caller's bearer token, or the configured one, to the backend.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	publicRouter := r.Group("")
	NewConfigurationRouter(publicRouter, appCtx.Config, appCtx.Stores.Names())

	apiRouter := r.Group("")
	apiRouter.Use(middleware.BearerToken(appCtx.WithToken))
	apiRouter.Use(middleware.RequestTimeout(appCtx.Config.Server.RequestTimeout))

	NewAuthRouter(apiRouter, appCtx.Service)
	NewStoreRouter(apiRouter, appCtx.Service)

	return r
}
