package services

import (
	"fmt"
	"time"

	"olympschools_backend/internal/auth"
	"olympschools_backend/internal/email"
	"olympschools_backend/internal/logger"
	"olympschools_backend/internal/models"
	"olympschools_backend/internal/repositories"
	"olympschools_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordResetService - машина состояний токенов сброса пароля.
// Active -> Used (терминальное) либо Expired (выводится из expiry_date,
// отдельно не хранится).
type PasswordResetService interface {
	// Request создает новый токен сброса и отправляет ссылку на email.
	// Все предыдущие живые токены пользователя помечаются использованными.
	Request(db *gorm.DB, userEmail string) error

	// Reset потребляет токен и устанавливает новый пароль
	Reset(db *gorm.DB, tokenValue, newPassword string) error

	// Validate - чтение без побочных эффектов: жив ли токен.
	// Используется перед показом формы сброса.
	Validate(db *gorm.DB, tokenValue string) bool
}

type passwordResetService struct {
	userRepo    repositories.UserRepository
	tokenRepo   repositories.ResetTokenRepository
	notifier    email.Provider
	tokenTTL    time.Duration
	frontendURL string
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.ResetTokenRepository,
	notifier email.Provider,
	tokenTTL time.Duration,
	frontendURL string,
) PasswordResetService {
	return &passwordResetService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		notifier:    notifier,
		tokenTTL:    tokenTTL,
		frontendURL: frontendURL,
	}
}

func (s *passwordResetService) Request(db *gorm.DB, userEmail string) error {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	tokenValue := uuid.NewString()

	// Инвалидация старых токенов и создание нового - одна транзакция:
	// в любой момент у пользователя не больше одного активного токена
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.MarkAllUsedByUserID(tx, user.ID); err != nil {
			return err
		}

		return s.tokenRepo.Create(tx, &models.PasswordResetToken{
			Token:      tokenValue,
			UserID:     user.ID,
			ExpiryDate: time.Now().Add(s.tokenTTL),
			Used:       false,
		})
	})
	if txErr != nil {
		return apperrors.InternalError(txErr)
	}

	// Токен уже закоммичен. Сбой доставки письма только логируем:
	// токен остается рабочим через validate-reset-token / reset-password.
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, tokenValue)
	if err := s.notifier.SendPasswordReset(user.Email, resetLink); err != nil {
		logger.WithError(err).Error("failed to send password reset email", "email", user.Email)
	}

	return nil
}

func (s *passwordResetService) Reset(db *gorm.DB, tokenValue, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		token, err := s.tokenRepo.FindByToken(tx, tokenValue)
		if err != nil {
			if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
				return apperrors.ErrTokenNotFound
			}
			return apperrors.InternalError(err)
		}

		if token.IsExpired() {
			return apperrors.ErrTokenExpired
		}

		// Условный апдейт used=false -> true. Из двух конкурентных
		// попыток на один токен выигрывает ровно одна.
		if err := s.tokenRepo.ConsumeByToken(tx, tokenValue); err != nil {
			switch {
			case apperrors.Is(err, repositories.ErrResetTokenConsumed):
				return apperrors.ErrTokenAlreadyUsed
			case apperrors.Is(err, repositories.ErrResetTokenNotFound):
				return apperrors.ErrTokenNotFound
			default:
				return apperrors.InternalError(err)
			}
		}

		if err := s.userRepo.UpdatePassword(tx, token.UserID, hashedPassword); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
}

func (s *passwordResetService) Validate(db *gorm.DB, tokenValue string) bool {
	token, err := s.tokenRepo.FindByToken(db, tokenValue)
	if err != nil {
		return false
	}
	return !token.Used && !token.IsExpired()
}
