package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки портала.
Сервисы возвращают их напрямую или через WithError с причиной.
*/

// --- Auth & учетные данные ---

// ErrInvalidCredentials - неверный email или пароль.
// Сообщение одно на оба случая, чтобы не раскрывать существование аккаунта.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrEmailAlreadyExists - email уже зарегистрирован
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrWeakPassword - пароль не проходит минимальные требования
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// ErrUserNotFound - пользователь не найден
var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Сессионные токены ---

// ErrSignatureInvalid - подпись сессионного токена не сошлась
// (подделка токена или смена секрета подписи)
var ErrSignatureInvalid = New(
	CodeInvalidToken,
	"auth",
	"Invalid session token",
	http.StatusUnauthorized,
)

// ErrSessionExpired - сессионный токен просрочен, нужен повторный логин
var ErrSessionExpired = New(
	CodeTokenExpired,
	"auth",
	"Session expired, please log in again",
	http.StatusUnauthorized,
)

// --- Токены сброса пароля ---

// ErrTokenNotFound - токен сброса не существует
var ErrTokenNotFound = New(
	CodeTokenNotFound,
	"password_reset",
	"Invalid password reset token",
	http.StatusBadRequest,
)

// ErrTokenExpired - срок действия токена сброса истек
var ErrTokenExpired = New(
	CodeTokenExpired,
	"password_reset",
	"Password reset token has expired",
	http.StatusBadRequest,
)

// ErrTokenAlreadyUsed - токен сброса уже был использован
var ErrTokenAlreadyUsed = New(
	CodeTokenAlreadyUsed,
	"password_reset",
	"Password reset token has already been used",
	http.StatusBadRequest,
)

// --- Шифрование персональных данных ---

// ErrDecryptionFailure - не удалось расшифровать персональное поле.
// Это НЕ пользовательская ошибка: либо ключ не совпадает с тем, которым
// шифровали, либо данные в колонке повреждены. Отдаем 500 и не глушим.
var ErrDecryptionFailure = New(
	CodeDecryptionFailure,
	"encryption",
	"Failed to decrypt personal data field",
	http.StatusInternalServerError,
)

// --- Роли ---

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
