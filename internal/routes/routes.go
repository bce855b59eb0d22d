package routes

import (
	"net/http"

	"propel_backend/internal/config"
	"propel_backend/internal/handlers"
	"propel_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// Пути намеренно без версионного префикса: /accounts и /properties -
// публичный контракт API, от которого зависят мобильные клиенты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, cfg *config.Config) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", metrics.Handler())

	// Загруженные фотографии отдаются статикой
	ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)

	root := ginRouter.Group("")
	{
		appHandlers.AuthHandler.RegisterRoutes(root)
		appHandlers.AccountHandler.RegisterRoutes(root)
		appHandlers.PropertyHandler.RegisterRoutes(root)
	}
}
