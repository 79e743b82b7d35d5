package integration_test

import (
	"net/http"
	"testing"
	"time"

	"olympschools_backend/internal/models"
	"olympschools_backend/internal/repositories"
	"olympschools_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestPasswordResetFlow - полный сценарий сброса пароля:
// запрос ссылки, потребление токена, логин новым паролем,
// отказ старому паролю и повторному использованию токена.
func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "reset@test.com", "OldPass123", models.RoleUser)

	// Запрос сброса
	forgotRes, forgotBody := ts.SendRequest(t, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": "reset@test.com",
	})
	assert.Equal(t, http.StatusOK, forgotRes.StatusCode, "Ответ: "+forgotBody)

	// Токен достаем из БД: mock-провайдер письмо не отправляет
	var token models.PasswordResetToken
	err := tx.Where("user_id = ? AND used = ?", user.ID, false).First(&token).Error
	assert.NoError(t, err, "После forgot-password должен существовать живой токен")

	// Проверка токена перед показом формы
	valRes, valBody := ts.SendRequest(t, "GET", "/api/v1/auth/validate-reset-token/"+token.Token, "", nil)
	assert.Equal(t, http.StatusOK, valRes.StatusCode)
	assert.Contains(t, valBody, `"valid":true`)

	// Сброс пароля
	resetRes, resetBody := ts.SendRequest(t, "POST", "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":        token.Token,
		"new_password": "NewP@ss1",
	})
	assert.Equal(t, http.StatusOK, resetRes.StatusCode, "Ответ: "+resetBody)

	// Старый пароль больше не работает
	oldRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "reset@test.com",
		"password": "OldPass123",
	})
	assert.Equal(t, http.StatusUnauthorized, oldRes.StatusCode)

	// Новый пароль работает
	newRes, newBody := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "reset@test.com",
		"password": "NewP@ss1",
	})
	assert.Equal(t, http.StatusOK, newRes.StatusCode, "Ответ: "+newBody)

	// Повторное потребление того же токена
	reuseRes, reuseBody := ts.SendRequest(t, "POST", "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":        token.Token,
		"new_password": "AnotherPass1",
	})
	assert.Equal(t, http.StatusBadRequest, reuseRes.StatusCode)
	assert.Contains(t, reuseBody, "already been used")

	t.Log("СБРОС ПАРОЛЯ: Полный сценарий прошел")
}

// TestForgotPassword_UnknownEmail - ответ не раскрывает, существует ли email
func TestForgotPassword_UnknownEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "exists@test.com", "password123", models.RoleUser)

	knownRes, knownBody := ts.SendRequest(t, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": user.Email,
	})
	unknownRes, unknownBody := ts.SendRequest(t, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
		"email": "nobody@test.com",
	})

	assert.Equal(t, http.StatusOK, knownRes.StatusCode)
	assert.Equal(t, http.StatusOK, unknownRes.StatusCode)
	assert.JSONEq(t, knownBody, unknownBody, "Ответы для известного и неизвестного email должны совпадать")
}

// TestForgotPassword_InvalidatesOldTokens - у пользователя не больше
// одного живого токена: повторный запрос гасит предыдущий
func TestForgotPassword_InvalidatesOldTokens(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "twice@test.com", "password123", models.RoleUser)

	for i := 0; i < 2; i++ {
		res, _ := ts.SendRequest(t, "POST", "/api/v1/auth/forgot-password", "", map[string]interface{}{
			"email": user.Email,
		})
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	var activeCount int64
	err := tx.Model(&models.PasswordResetToken{}).
		Where("user_id = ? AND used = ?", user.ID, false).
		Count(&activeCount).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), activeCount, "Живой токен должен остаться ровно один")

	var totalCount int64
	err = tx.Model(&models.PasswordResetToken{}).
		Where("user_id = ?", user.ID).
		Count(&totalCount).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(2), totalCount)
}

// TestResetPassword_ExpiredToken - просроченный токен отклоняется
// раньше проверки used
func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "expired@test.com", "password123", models.RoleUser)
	token := helpers.CreateResetToken(t, tx, user.ID, time.Now().Add(-time.Hour), false)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":        token.Token,
		"new_password": "FreshPass1",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "expired")

	// validate-reset-token для него тоже отрицательный
	valRes, valBody := ts.SendRequest(t, "GET", "/api/v1/auth/validate-reset-token/"+token.Token, "", nil)
	assert.Equal(t, http.StatusBadRequest, valRes.StatusCode)
	assert.Contains(t, valBody, `"valid":false`)

	// Пароль не изменился
	loginRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "expired@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, loginRes.StatusCode)
}

// TestResetPassword_UnknownToken - несуществующий токен
func TestResetPassword_UnknownToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, body := ts.SendRequest(t, "POST", "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":        "no-such-token",
		"new_password": "FreshPass1",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "Invalid password reset token")
}

// TestDeleteExpired_OnlyPastExpiry - уборка удаляет только просроченные
// токены независимо от used и не трогает живые
func TestDeleteExpired_OnlyPastExpiry(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "janitor@test.com", "password123", models.RoleUser)

	helpers.CreateResetToken(t, tx, user.ID, time.Now().Add(-time.Hour), false)    // просрочен
	helpers.CreateResetToken(t, tx, user.ID, time.Now().Add(-2*time.Hour), true)  // просрочен и использован
	alive := helpers.CreateResetToken(t, tx, user.ID, time.Now().Add(time.Hour), false)

	repo := repositories.NewResetTokenRepository()
	deleted, err := repo.DeleteExpired(tx, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	var remaining []models.PasswordResetToken
	assert.NoError(t, tx.Where("user_id = ?", user.ID).Find(&remaining).Error)
	assert.Len(t, remaining, 1)
	assert.Equal(t, alive.Token, remaining[0].Token)
}

// TestResetPassword_WeakNewPassword - токен не потребляется, если новый
// пароль не проходит политику
func TestResetPassword_WeakNewPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginUser(t, ts, tx, "weakreset@test.com", "password123", models.RoleUser)
	token := helpers.CreateResetToken(t, tx, user.ID, time.Now().Add(time.Hour), false)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/auth/reset-password", "", map[string]interface{}{
		"token":        token.Token,
		"new_password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Токен остался живым
	var reloaded models.PasswordResetToken
	err := tx.Where("token = ?", token.Token).First(&reloaded).Error
	assert.NoError(t, err)
	assert.False(t, reloaded.Used, "Токен не должен потребляться при отклоненном пароле")
}
