package database

import (
	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate выполняет автомиграцию схемы БД
func Migrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	// Для uuid_generate_v4() в default первичных ключей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}
