package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tfl_backend/internal/handlers"
	"tfl_backend/internal/logger"
)

// RegisterRoutes registers every HTTP route. API docs are only served
// outside production.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	production bool,
) {
	appHandlers.PublicHandler.RegisterRoutes(ginRouter)
	appHandlers.AuthHandler.RegisterRoutes(ginRouter)
	appHandlers.EventHandler.RegisterRoutes(ginRouter)
	appHandlers.NoticeHandler.RegisterRoutes(ginRouter)
	appHandlers.AdminHandler.RegisterRoutes(ginRouter)
	appHandlers.SettingsHandler.RegisterRoutes(ginRouter)

	if !production {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Debug("Swagger UI registered", "path", "/swagger/index.html")
	}
}
