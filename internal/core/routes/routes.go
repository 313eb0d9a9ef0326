package routes

import (
	"time"

	"assettrack/internal/core/container"
	"assettrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all feature handlers onto the engine. Handlers
// attach their own auth middleware; only login and health stay open.
func RegisterRoutes(router *gin.Engine, container *container.Container) {
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))

	container.LoginHandler.RegisterRoutes(router)
	container.AssetHandler.RegisterRoutes(router)
	container.MaintenanceHandler.RegisterRoutes(router)
	container.ReportHandler.RegisterRoutes(router)
	container.UserHandler.RegisterRoutes(router)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
