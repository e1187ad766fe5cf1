package credstore

import (
	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/settings"
)

// Select picks the keyring when it works and falls back to the file store.
// The choice is made once per process.
func Select(kr *KeyringStore, fallback *FileStore, log *slog.Logger) settings.CredentialStore {
	if err := kr.available(); err != nil {
		log.Debug("os keyring unavailable, using encrypted settings file", "error", err)
		return fallback
	}
	return kr
}
