package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"olympschools_backend/internal/models"
	"olympschools_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestRegisterFirstUserBecomesAdmin - первый зарегистрированный получает ADMIN,
// все последующие - USER
func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	clearUsers(t, tx)

	// Первый участник
	resA, bodyA := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", helpers.RegisterBody("first@test.com", "password123"))
	assert.Equal(t, http.StatusCreated, resA.StatusCode, "Ответ: "+bodyA)

	var respA struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyA), &respA))
	assert.Equal(t, "ADMIN", respA.Role, "Первый зарегистрированный должен стать ADMIN")
	assert.NotEmpty(t, respA.Token, "Регистрация должна вернуть токен авто-логина")

	// Второй участник
	resB, bodyB := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", helpers.RegisterBody("second@test.com", "password123"))
	assert.Equal(t, http.StatusCreated, resB.StatusCode, "Ответ: "+bodyB)

	var respB struct {
		Role string `json:"role"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyB), &respB))
	assert.Equal(t, "USER", respB.Role, "Второй зарегистрированный должен остаться USER")

	t.Logf("ПЕРВЫЙ АДМИН: Успешно. A=%s B=%s", respA.Role, respB.Role)
}

// TestRegister_DuplicateEmail - проверяет защиту от дубликатов
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "duplicate@test.com",
		PasswordHash: "pass123",
	})
	assert.NoError(t, err)

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", helpers.RegisterBody("duplicate@test.com", "password123"))

	assert.Equal(t, http.StatusConflict, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "already in use")
	t.Logf("ДУБЛИКАТ EMAIL: Успешно. Ответ: %s", regBodyStr)
}

// TestRegister_WeakPassword - пароль короче 6 символов отклоняется до записи
func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", helpers.RegisterBody("weak@test.com", "12345"))

	assert.Equal(t, http.StatusBadRequest, regRes.StatusCode)
	t.Logf("СЛАБЫЙ ПАРОЛЬ: Успешно отклонен (400). Ответ: %s", regBodyStr)
}

// TestLogin_Success - проверяет успешный логин
func TestLogin_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "success@test.com",
		PasswordHash: "correct-password",
	})
	assert.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    "success@test.com",
		"password": "correct-password",
	}
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "token")
	t.Logf("УСПЕШНЫЙ ЛОГИН: Ответ: %s", logBodyStr)
}

// TestLogin_BadPassword - неверный пароль и несуществующий email дают
// один и тот же ответ: чужие email не перебрать
func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "user@test.com",
		PasswordHash: "correct-password",
	})
	assert.NoError(t, err)

	// Неверный пароль
	badPassRes, badPassBody := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "user@test.com",
		"password": "WRONG-password",
	})
	assert.Equal(t, http.StatusUnauthorized, badPassRes.StatusCode)

	// Несуществующий email
	noUserRes, noUserBody := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "ghost@test.com",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusUnauthorized, noUserRes.StatusCode)

	// Тело ошибки не должно различаться
	assert.JSONEq(t, badPassBody, noUserBody, "Ответы для неверного пароля и неизвестного email должны совпадать")
	t.Logf("НЕВЕРНЫЕ КРЕДЫ: Успешно. Ответ: %s", badPassBody)
}

// TestChangePassword - смена пароля залогиненным пользователем
func TestChangePassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "changepass@test.com", "old-password", models.RoleUser)

	// Неверный текущий пароль
	badRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "WRONG-password",
		"new_password":     "new-password-1",
	})
	assert.Equal(t, http.StatusUnauthorized, badRes.StatusCode)

	// Верный текущий пароль
	okRes, okBody := ts.SendRequest(t, "POST", "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "old-password",
		"new_password":     "new-password-1",
	})
	assert.Equal(t, http.StatusOK, okRes.StatusCode, "Ответ: "+okBody)

	// Старый пароль больше не работает
	oldLoginRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "changepass@test.com",
		"password": "old-password",
	})
	assert.Equal(t, http.StatusUnauthorized, oldLoginRes.StatusCode)

	// Новый работает
	newLoginRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "changepass@test.com",
		"password": "new-password-1",
	})
	assert.Equal(t, http.StatusOK, newLoginRes.StatusCode)
	t.Log("СМЕНА ПАРОЛЯ: Успешно")
}

// TestAuth_MissingToken - защищенный маршрут без токена
func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Мусорный токен
	badRes, _ := ts.SendRequest(t, "GET", "/api/v1/profile", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, badRes.StatusCode)
}
