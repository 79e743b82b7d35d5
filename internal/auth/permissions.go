package auth

import "olympschools_backend/internal/models"

// IsAdmin проверяет, дает ли роль административные права
func IsAdmin(role models.UserRole) bool {
	return role == models.RoleAdmin
}
