package license

import (
	"fmt"
	"regexp"
	"strings"

	"licensekeeper/internal/app/client/crypto"
)

const (
	DefaultPrefix = "DTE"

	keyTokenBytes   = 16
	maxFilenameLen  = 60
	shortKeyLen     = 6
	defaultFilename = "unnamed"
)

var (
	keyPattern    = regexp.MustCompile(`^[A-Z0-9]+(-[0-9A-F]{8}){4}$`)
	prefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,16}$`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	nonHex        = regexp.MustCompile(`[^A-F0-9]`)
)

// KeyGenerator returns a new random license key.
type KeyGenerator func() (string, error)

// NewKeyGenerator builds PREFIX-XXXXXXXX-XXXXXXXX-XXXXXXXX-XXXXXXXX keys
// from a cryptographically secure source.
func NewKeyGenerator(prefix string) (KeyGenerator, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, fmt.Errorf("%w: key prefix %q", ErrInvalidInput, prefix)
	}

	return func() (string, error) {
		token, err := crypto.GenerateRandomHex(keyTokenBytes)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%s-%s-%s-%s", prefix, token[0:8], token[8:16], token[16:24], token[24:32]), nil
	}, nil
}

func IsValidKey(key string) bool {
	return keyPattern.MatchString(NormalizeKey(key))
}

func NormalizeKey(key string) string {
	return strings.TrimSpace(key)
}

// MaskKey hides the middle of a key for logs.
func MaskKey(key string) string {
	key = NormalizeKey(key)
	if len(key) <= 12 {
		return strings.Repeat("*", len(key))
	}
	return key[:8] + "..." + key[len(key)-4:]
}

// SanitizeFilename maps anything outside [A-Za-z0-9_-] to "_" and caps the length.
func SanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultFilename
	}
	s = unsafeChars.ReplaceAllString(s, "_")
	if len(s) > maxFilenameLen {
		s = s[:maxFilenameLen]
	}
	return s
}

// ShortKey is the trailing hex fragment used in receipt file names.
func ShortKey(key string) string {
	hex := nonHex.ReplaceAllString(strings.ToUpper(key), "")
	if len(hex) > shortKeyLen {
		return hex[len(hex)-shortKeyLen:]
	}
	return hex
}
