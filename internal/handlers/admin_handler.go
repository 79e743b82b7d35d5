package handlers

import (
	"net/http"

	"olympschools_backend/internal/services"
	"olympschools_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewAdminHandler(base *BaseHandler, profileService services.ProfileService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes регистрирует админ-маршруты (auth + admin)
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authRequired)
	admin.Use(adminRequired)
	{
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/role", h.SetRole)
	}
}

// ListUsers возвращает анкеты всех участников (роль USER)
func (h *AdminHandler) ListUsers(c *gin.Context) {
	db := h.GetDB(c)

	profiles, err := h.profileService.ListUserProfiles(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// SetRole - явная админ-смена роли пользователя.
// Единственный легальный путь мутации роли после регистрации.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.profileService.SetRole(db, req.Email, req.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
