package routes

import (
	"olympschools_backend/internal/auth"
	"olympschools_backend/internal/handlers"
	"olympschools_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты приложения
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	authRequired := middleware.AuthMiddleware(tokens)
	adminRequired := middleware.AdminMiddleware()

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authRequired)
		appHandlers.ProfileHandler.RegisterRoutes(api, authRequired)
		appHandlers.AdminHandler.RegisterRoutes(api, authRequired, adminRequired)
	}
}
