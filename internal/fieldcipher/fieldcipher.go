package fieldcipher

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
	"fmt"

	"olympschools_backend/pkg/apperrors"
)

const keySize = 32 // AES-256

// Cipher - симметричное шифрование отдельных персональных полей.
//
// Схема детерминированная: один процессный ключ, режим ECB, без IV.
// Одинаковые открытые тексты дают одинаковые шифротексты, то есть
// равенство значений (например, одинаковых телефонов) просачивается
// наружу. Оставлено сознательно: колонки уже содержат такие шифротексты,
// а переход на рандомизированный IV сломал бы расшифровку всего, что
// накоплено. Не переиспользовать для новых данных без этой оговорки.
type Cipher struct {
	key []byte
}

// New создает Cipher из конфигурационного секрета.
// Секрет обрезается или дополняется нулями до 32 байт.
func New(secret string) *Cipher {
	key := make([]byte, keySize)
	copy(key, []byte(secret))
	return &Cipher{key: key}
}

// Encrypt шифрует строку и возвращает base64-представление,
// пригодное для хранения в обычной строковой колонке.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)

	encrypted := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		block.Encrypt(encrypted[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// Decrypt расшифровывает base64-шифротекст.
// Любой сбой (битый base64, неверная длина, неверный ключ, битый паддинг)
// возвращает ErrDecryptionFailure - это нарушение целостности, а не
// бизнес-ошибка, и глушить его нельзя.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", apperrors.ErrDecryptionFailure.WithError(err)
	}

	if len(decoded) == 0 || len(decoded)%aes.BlockSize != 0 {
		return "", apperrors.ErrDecryptionFailure.WithError(
			fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(decoded)))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	decrypted := make([]byte, len(decoded))
	for i := 0; i < len(decoded); i += aes.BlockSize {
		block.Decrypt(decrypted[i:i+aes.BlockSize], decoded[i:i+aes.BlockSize])
	}

	unpadded, err := pkcs7Unpad(decrypted, aes.BlockSize)
	if err != nil {
		return "", apperrors.ErrDecryptionFailure.WithError(err)
	}

	return string(unpadded), nil
}

// pkcs7Pad дополняет данные до кратности размеру блока.
// Пустая строка тоже дополняется (целый блок паддинга), поэтому
// round-trip работает и для "".
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(data, padding...)
}

// pkcs7Unpad снимает паддинг с проверкой корректности
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded data length %d", len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding length %d", padLen)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}

	return data[:len(data)-padLen], nil
}
