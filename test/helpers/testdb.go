package helpers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"testing"
	"time"

	"olympschools_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		rawPassword := user.PasswordHash
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.BirthDate.IsZero() {
		user.BirthDate = time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC)
	}
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя напрямую в транзакции и логинит
// его через API. Возвращает токен сессии и самого пользователя.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password, // Сырой пароль, CreateUser захеширует
		Role:         role,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	log.Printf("✅ [Helper] Создан и залогинен пользователь %s (Role: %s)", email, role)

	// Восстанавливаем сырой пароль в объекте (для удобства в тестах)
	user.PasswordHash = password

	return loginResponse.Token, user
}

// CreateResetToken создает токен сброса пароля напрямую в транзакции
func CreateResetToken(t *testing.T, tx *gorm.DB, userID string, expiry time.Time, used bool) *models.PasswordResetToken {
	token := &models.PasswordResetToken{
		Token:      uuid.NewString(),
		UserID:     userID,
		ExpiryDate: expiry,
		Used:       used,
	}
	if err := tx.Create(token).Error; err != nil {
		t.Fatalf("Не удалось создать токен сброса: %v", err)
	}
	return token
}

// RegisterBody возвращает минимально валидную анкету регистрации
func RegisterBody(email, password string) map[string]interface{} {
	return map[string]interface{}{
		"email":      email,
		"password":   password,
		"last_name":  "Иванов",
		"first_name": "Иван",
		"birth_date": "2008-09-01",
		"gender":     "MALE",
	}
}
