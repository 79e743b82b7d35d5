package repositories

import (
	"errors"
	"time"

	"olympschools_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrResetTokenNotFound возвращается, когда токен сброса не найден в БД
	ErrResetTokenNotFound = errors.New("password reset token not found")
	// ErrResetTokenConsumed возвращается, когда условный апдейт used не прошел:
	// токен уже был использован (в том числе конкурентным запросом)
	ErrResetTokenConsumed = errors.New("password reset token already consumed")
)

// ResetTokenRepository определяет интерфейс для операций с токенами сброса пароля
type ResetTokenRepository interface {
	// Create сохраняет новый токен
	Create(db *gorm.DB, token *models.PasswordResetToken) error

	// FindByToken находит токен по его строковому значению
	FindByToken(db *gorm.DB, tokenValue string) (*models.PasswordResetToken, error)

	// MarkAllUsedByUserID помечает использованными все живые токены пользователя.
	// Вызывается перед созданием нового: у пользователя в любой момент
	// может быть не больше одного активного токена.
	MarkAllUsedByUserID(db *gorm.DB, userID string) error

	// ConsumeByToken атомарно переводит used false -> true.
	// Условный UPDATE по used = false: из двух конкурентных попыток
	// выиграет ровно одна, проигравшая получит ErrResetTokenConsumed.
	ConsumeByToken(db *gorm.DB, tokenValue string) error

	// DeleteExpired удаляет все токены с истекшим сроком независимо от used.
	// Возвращает число удаленных строк.
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)

	// CountActiveByUserID считает живые (не использованные, не истекшие) токены
	CountActiveByUserID(db *gorm.DB, userID string) (int64, error)
}

type resetTokenRepository struct{}

// NewResetTokenRepository создает новый экземпляр ResetTokenRepository
func NewResetTokenRepository() ResetTokenRepository {
	return &resetTokenRepository{}
}

func (r *resetTokenRepository) Create(db *gorm.DB, token *models.PasswordResetToken) error {
	return db.Create(token).Error
}

func (r *resetTokenRepository) FindByToken(db *gorm.DB, tokenValue string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	if err := db.Where("token = ?", tokenValue).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *resetTokenRepository) MarkAllUsedByUserID(db *gorm.DB, userID string) error {
	return db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("used", true).Error
}

func (r *resetTokenRepository) ConsumeByToken(db *gorm.DB, tokenValue string) error {
	result := db.Model(&models.PasswordResetToken{}).
		Where("token = ? AND used = ?", tokenValue, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо токена нет, либо used уже true - различаем отдельным чтением
		var count int64
		if err := db.Model(&models.PasswordResetToken{}).
			Where("token = ?", tokenValue).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrResetTokenNotFound
		}
		return ErrResetTokenConsumed
	}
	return nil
}

func (r *resetTokenRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expiry_date < ?", now).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}

func (r *resetTokenRepository) CountActiveByUserID(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ? AND expiry_date > ?", userID, false, time.Now()).
		Count(&count).Error
	return count, err
}
