package services

// ServiceContainer - контейнер всех сервисов приложения,
// собирается один раз в internal/app и раздается хендлерам
type ServiceContainer struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	ProfileService       ProfileService
}
