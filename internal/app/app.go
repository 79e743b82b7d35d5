package app

import (
	"context"
	"fmt"
	"time"

	"olympschools_backend/database"
	"olympschools_backend/internal/auth"
	"olympschools_backend/internal/config"
	"olympschools_backend/internal/email"
	"olympschools_backend/internal/fieldcipher"
	"olympschools_backend/internal/handlers"
	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/middleware"
	"olympschools_backend/internal/repositories"
	"olympschools_backend/internal/routes"
	"olympschools_backend/internal/services"
	"olympschools_backend/internal/validator"
	"olympschools_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter, janitor := SetupRouter(cfg, gormDB)

	// Уборщик просроченных токенов живет независимо от HTTP-трафика
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	janitor.Start(ctx)
	logger.Info("Token janitor scheduled", "hour", cfg.PasswordReset.CleanupHour)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает зависимости и возвращает готовый gin.Engine.
// Вынесено из Run, чтобы интеграционные тесты могли поднять тот же
// роутер поверх httptest.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.TokenJanitor) {
	// Процессные секреты читаются один раз здесь и передаются
	// в конструкторы явно - внутри алгоритмов глобального состояния нет
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	cipher := fieldcipher.New(cfg.Encryption.Secret)

	emailProvider := setupEmailProvider(cfg)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	resetTokenRepo := repositories.NewResetTokenRepository()

	// --- Сервисы ---
	container := &services.ServiceContainer{
		AuthService: services.NewAuthService(userRepo, tokens, cipher),
		PasswordResetService: services.NewPasswordResetService(
			userRepo,
			resetTokenRepo,
			emailProvider,
			time.Duration(cfg.PasswordReset.TokenTTLHours)*time.Hour,
			cfg.PasswordReset.FrontendURL,
		),
		ProfileService: services.NewProfileService(userRepo, cipher),
	}

	// --- Хендлеры ---
	v := validator.New()
	base := handlers.NewBaseHandler(v)
	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(base, container.AuthService, container.PasswordResetService),
		ProfileHandler: handlers.NewProfileHandler(base, container.ProfileService),
		AdminHandler:   handlers.NewAdminHandler(base, container.ProfileService),
	}

	// --- Gin ---
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.DBMiddleware(gormDB))

	routes.RegisterRoutes(ginRouter, appHandlers, tokens)

	janitor := workers.NewTokenJanitor(gormDB, resetTokenRepo, cfg.PasswordReset.CleanupHour)

	return ginRouter, janitor
}

// setupEmailProvider возвращает SMTP провайдер или mock, если SMTP не настроен
func setupEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return &MockEmailProvider{}
	}

	renderer, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to initialize email templates", "error", err)
	}

	provider, err := email.NewSMTPProvider(email.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, renderer)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	return provider
}
