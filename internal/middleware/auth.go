package middleware

import (
	"strings"

	"olympschools_backend/internal/auth"
	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/models"
	"olympschools_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки сессионного JWT.
// Проверка stateless: подпись и срок, без обращений к БД.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			// Parse уже различает просрочку и невалидную подпись
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		// Сохраняем claims в контекст запроса
		c.Set("userEmail", claims.Email())
		c.Set("role", string(claims.Role))

		ctx := logger.WithUserEmail(c.Request.Context(), claims.Email())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminMiddleware - пускает дальше только пользователей с ролью ADMIN
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		role, ok := roleVal.(string)
		if !ok || !auth.IsAdmin(models.UserRole(role)) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserEmail извлекает email аутентифицированного пользователя из контекста
func GetUserEmail(c *gin.Context) string {
	emailVal, exists := c.Get("userEmail")
	if !exists {
		return ""
	}

	userEmail, ok := emailVal.(string)
	if !ok {
		return ""
	}

	return userEmail
}
