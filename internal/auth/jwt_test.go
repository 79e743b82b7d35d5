package auth

import (
	"testing"
	"time"

	"olympschools_backend/internal/models"
	"olympschools_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	m := NewTokenManager("unit-test-secret", time.Hour)

	token, err := m.Generate("pupil@test.com", models.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "pupil@test.com", claims.Email())
	assert.Equal(t, models.RoleUser, claims.Role)

	// exp = iat + ttl
	assert.Equal(t,
		claims.IssuedAt.Add(time.Hour),
		claims.ExpiresAt.Time,
	)
}

func TestTokenManager_Expired(t *testing.T) {
	// Отрицательный ttl: токен рождается уже просроченным
	m := NewTokenManager("unit-test-secret", -time.Minute)

	token, err := m.Generate("pupil@test.com", models.RoleUser)
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSessionExpired))
}

func TestTokenManager_TamperedToken(t *testing.T) {
	m := NewTokenManager("unit-test-secret", time.Hour)

	token, err := m.Generate("pupil@test.com", models.RoleUser)
	require.NoError(t, err)

	// Портим один символ полезной нагрузки
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = m.Parse(string(tampered))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSignatureInvalid))
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Generate("pupil@test.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSignatureInvalid))
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("unit-test-secret", time.Hour)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Parse(input)
		require.Error(t, err, input)
		assert.True(t, apperrors.Is(err, apperrors.ErrSignatureInvalid), input)
	}
}
