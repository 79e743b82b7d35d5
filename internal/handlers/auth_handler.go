package handlers

import (
	"net/http"

	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/services"
	"olympschools_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	resetService services.PasswordResetService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, resetService services.PasswordResetService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		resetService: resetService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации и сброса пароля
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.GET("/validate-reset-token/:token", h.ValidateResetToken)

		auth.POST("/change-password", authRequired, h.ChangePassword)
	}
}

// Register - регистрация нового участника с авто-логином
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login - вход по email и паролю
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ForgotPassword - запрос ссылки на сброс пароля.
// Ответ одинаков независимо от того, существует ли email:
// сам факт регистрации адреса не раскрываем.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.resetService.Request(db, req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "Password reset request failed (hiding from user)",
			"error", err.Error(),
			"email", req.Email,
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the email exists, a password reset link has been sent",
	})
}

// ResetPassword - установка нового пароля по токену сброса
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.resetService.Reset(db, req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResetTokenStatusResponse{
		Message: "Password successfully reset",
		Valid:   true,
	})
}

// ValidateResetToken - проверка токена перед показом формы сброса.
// Чтение без побочных эффектов.
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	token := c.Param("token")

	db := h.GetDB(c)

	if h.resetService.Validate(db, token) {
		c.JSON(http.StatusOK, dto.ResetTokenStatusResponse{
			Message: "Token is valid",
			Valid:   true,
		})
		return
	}

	c.JSON(http.StatusBadRequest, dto.ResetTokenStatusResponse{
		Message: "Invalid or expired token",
		Valid:   false,
	})
}

// ChangePassword - смена пароля аутентифицированным пользователем
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userEmail, ok := h.GetAndAuthorizeUserEmail(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ChangePassword(db, userEmail, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password successfully changed"})
}
