package handlers

import (
	"net/http"

	"olympschools_backend/internal/services"
	"olympschools_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes регистрирует маршруты профиля (все под аутентификацией)
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	profile := rg.Group("/profile")
	profile.Use(authRequired)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

// GetProfile возвращает профиль текущего пользователя
// с расшифрованными персональными полями
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userEmail, ok := h.GetAndAuthorizeUserEmail(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.profileService.GetByEmail(db, userEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile - частичное обновление профиля текущего пользователя
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userEmail, ok := h.GetAndAuthorizeUserEmail(c)
	if !ok {
		return
	}

	var req dto.ProfileUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	profile, err := h.profileService.Update(db, userEmail, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
