package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// ClearMemory затирает чувствительные данные из памяти
func ClearMemory(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// GenerateRandomBytes генерирует криптографически безопасные случайные байты
func GenerateRandomBytes(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return bytes, nil
}

// GenerateRandomHex генерирует случайную hex строку (в верхнем регистре)
func GenerateRandomHex(size int) (string, error) {
	bytes, err := GenerateRandomBytes(size)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(bytes)), nil
}

const secretMask = "********"

// MaskSecret скрывает секрет целиком: длина и символы не раскрываются
func MaskSecret(data string) string {
	if data == "" {
		return ""
	}
	return secretMask
}
