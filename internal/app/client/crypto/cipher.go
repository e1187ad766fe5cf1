// internal/app/client/crypto/cipher.go
package crypto

import (
	"crypto/cipher"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize - длина секретного ключа процесса
	KeySize = chacha20poly1305.KeySize

	// Версия формата шифротекста: version(1) || nonce(24) || sealed
	tokenVersion byte = 0x01
)

var (
	// ErrInvalidToken - шифротекст поврежден или зашифрован другим ключом
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidKey - ключ не удалось разобрать или неверная длина
	ErrInvalidKey = errors.New("invalid secret key")
)

// Cipher - аутентифицированное симметричное шифрование одним ключом процесса.
// Создается один раз при старте и передается в конструкторы компонентов.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher создает шифровальщик из 32-байтного ключа
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: ожидалось %d байт, получено %d", ErrInvalidKey, KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AEAD: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromString разбирает ключ из конфигурации и создает шифровальщик
func NewCipherFromString(encoded string) (*Cipher, error) {
	key, err := ParseKey(encoded)
	if err != nil {
		return nil, err
	}
	defer ClearMemory(key)

	return NewCipher(key)
}

// Encrypt шифрует данные. Пустой ввод допустим.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce, err := GenerateRandomBytes(c.aead.NonceSize())
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	out := make([]byte, 0, 1+len(nonce)+len(plaintext)+c.aead.Overhead())
	out = append(out, tokenVersion)
	out = append(out, nonce...)

	return c.aead.Seal(out, nonce, plaintext, []byte{tokenVersion}), nil
}

// Decrypt расшифровывает данные. Любая порча или чужой ключ -> ErrInvalidToken.
func (c *Cipher) Decrypt(ciphertext []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < 1+nonceSize+c.aead.Overhead() {
		return nil, ErrInvalidToken
	}
	if ciphertext[0] != tokenVersion {
		return nil, ErrInvalidToken
	}

	nonce := ciphertext[1 : 1+nonceSize]
	sealed := ciphertext[1+nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, []byte{tokenVersion})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// EncryptString шифрует строку и возвращает base64url токен
func (c *Cipher) EncryptString(value string) (string, error) {
	encrypted, err := c.Encrypt([]byte(value))
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(encrypted), nil
}

// DecryptString расшифровывает base64url токен
func (c *Cipher) DecryptString(token string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", ErrInvalidToken
	}

	decrypted, err := c.Decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(decrypted), nil
}

// ParseKey принимает ключ в base64 (std/url) или hex, ровно 32 байта
func ParseKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("%w: пустой ключ", ErrInvalidKey)
	}

	decoders := []func(string) ([]byte, error){
		base64.StdEncoding.DecodeString,
		base64.URLEncoding.DecodeString,
		base64.RawStdEncoding.DecodeString,
		base64.RawURLEncoding.DecodeString,
		hex.DecodeString,
	}
	for _, decode := range decoders {
		key, err := decode(encoded)
		if err == nil && len(key) == KeySize {
			return key, nil
		}
	}

	return nil, fmt.Errorf("%w: ожидалось %d байт в base64 или hex", ErrInvalidKey, KeySize)
}

// GenerateKey генерирует новый секретный ключ в base64
func GenerateKey() (string, error) {
	key, err := GenerateRandomBytes(KeySize)
	if err != nil {
		return "", err
	}
	defer ClearMemory(key)

	return base64.StdEncoding.EncodeToString(key), nil
}
