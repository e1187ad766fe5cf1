package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	DefaultService = "licensekeeper"

	checkUser = "__licensekeeper_check__"
)

// KeyringStore uses the OS keychain (Secret Service, Keychain, WinCred).
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultService
	}
	return &KeyringStore{service: service}
}

func (k *KeyringStore) Name() string { return "keyring" }

func (k *KeyringStore) Set(_ context.Context, email, password string) error {
	if err := keyring.Set(k.service, email, password); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *KeyringStore) Get(_ context.Context, email string) (string, bool) {
	pw, err := keyring.Get(k.service, email)
	if err != nil {
		return "", false
	}
	return pw, true
}

func (k *KeyringStore) Clear(_ context.Context, email string) error {
	err := keyring.Delete(k.service, email)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}

func (k *KeyringStore) available() error {
	if err := keyring.Set(k.service, checkUser, "ok"); err != nil {
		return err
	}
	return keyring.Delete(k.service, checkUser)
}
