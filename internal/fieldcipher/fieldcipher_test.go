package fieldcipher

import (
	"testing"

	"olympschools_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := New("test-secret")

	cases := []string{
		"Иванов",
		"simple ascii",
		"+7 900 123-45-67",
		"", // пустая строка тоже должна переживать round-trip
		"ровно 16 байт!!",
		"строка заметно длиннее одного блока AES, несколько блоков подряд",
	}

	for _, plaintext := range cases {
		encrypted, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

// Схема детерминированная: одинаковый открытый текст при одном ключе
// дает одинаковый шифротекст. Это контракт хранения, а не случайность.
func TestEncrypt_Deterministic(t *testing.T) {
	c := New("test-secret")

	first, err := c.Encrypt("Смирнова")
	require.NoError(t, err)
	second, err := c.Encrypt("Смирнова")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Ключ нормализуется до 32 байт: короткий дополняется нулями,
// длинный обрезается
func TestNew_KeyNormalization(t *testing.T) {
	short := New("short")
	long := New("this secret is deliberately much longer than thirty-two bytes total")

	encrypted, err := short.Encrypt("данные")
	require.NoError(t, err)
	decrypted, err := short.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "данные", decrypted)

	// Обрезанный и полный длинный секрет эквивалентны
	truncated := New("this secret is deliberately much")
	fromLong, err := long.Encrypt("данные")
	require.NoError(t, err)
	fromTruncated, err := truncated.Encrypt("данные")
	require.NoError(t, err)
	assert.Equal(t, fromLong, fromTruncated)
}

func TestDecrypt_WrongKey(t *testing.T) {
	encrypted, err := New("correct-secret").Encrypt("секретные данные")
	require.NoError(t, err)

	_, err = New("wrong-secret").Decrypt(encrypted)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDecryptionFailure))
}

func TestDecrypt_CorruptInput(t *testing.T) {
	c := New("test-secret")

	cases := []struct {
		name  string
		input string
	}{
		{"не base64", "%%%not-base64%%%"},
		{"пустой шифротекст", ""},
		{"не кратно блоку", "YWJj"}, // 3 байта
	}

	for _, tc := range cases {
		_, err := c.Decrypt(tc.input)
		require.Error(t, err, tc.name)
		assert.True(t, apperrors.Is(err, apperrors.ErrDecryptionFailure), tc.name)
	}
}
