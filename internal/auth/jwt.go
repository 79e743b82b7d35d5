package auth

import (
	"time"

	"olympschools_backend/internal/models"
	"olympschools_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - полезная нагрузка сессионного токена
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Email возвращает subject токена
func (c *Claims) Email() string {
	return c.Subject
}

// TokenManager выпускает и проверяет сессионные JWT.
// Секрет подписи - процессная конфигурация: читается один раз на старте
// и передается сюда явно; смена секрета инвалидирует все выданные токены.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager создает TokenManager с заданным секретом и сроком жизни
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate выпускает подписанный токен для пользователя.
// Claims: sub=email, role, iat, exp = iat + ttl. Подпись HMAC-SHA512.
func (m *TokenManager) Generate(email string, role models.UserRole) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(m.secret)
}

// Parse проверяет подпись и срок действия токена.
// Проверка чистая: никаких обращений к БД, валидность полностью
// определяется подписью и exp. Просрочка -> ErrSessionExpired,
// все остальное (подделка, мусор, чужой секрет) -> ErrSignatureInvalid.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if apperrors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, apperrors.ErrSignatureInvalid.WithError(err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, apperrors.ErrSignatureInvalid
	}

	return claims, nil
}
