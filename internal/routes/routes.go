package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hela9_backend/internal/handlers"
	"hela9_backend/internal/logger"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/storage"
	"hela9_backend/ws"
)

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.StylistHandler.RegisterRoutes(api)
		appHandlers.CatalogHandler.RegisterRoutes(api)
		appHandlers.ReservationHandler.RegisterRoutes(api)
		appHandlers.FeedHandler.RegisterRoutes(api)
		appHandlers.DeplacementHandler.RegisterRoutes(api)
		appHandlers.DashboardHandler.RegisterRoutes(api)
		appHandlers.LanguageHandler.RegisterRoutes(api)
	}

	wsHandler.RegisterRoutes(ginRouter)
	logger.Info("WebSocket route /ws registered")
}

// RegisterSystemRoutes - health, метрики и раздача локальных загрузок.
func RegisterSystemRoutes(ginRouter *gin.Engine, db *gorm.DB, reg *metrics.Registry, store storage.Storage) {
	ginRouter.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "Health check failed", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if reg != nil {
		ginRouter.GET("/metrics", gin.WrapH(reg.Handler()))
	}

	// S3 отдает файлы сам, локальное хранилище раздаем отсюда.
	if local, ok := store.(*storage.LocalStorage); ok {
		prefix := local.BaseURL()
		if strings.HasPrefix(prefix, "/") {
			ginRouter.Static(prefix, local.BasePath())
			logger.Info("Serving local uploads", "prefix", prefix, "dir", local.BasePath())
		}
	}
}
