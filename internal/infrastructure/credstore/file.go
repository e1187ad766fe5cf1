package credstore

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/settings"
)

type stringCipher interface {
	EncryptString(value string) (string, error)
	DecryptString(token string) (string, error)
}

// FileStore keeps one encrypted password in settings.json. The email is
// not part of the stored value, so only one account is remembered.
type FileStore struct {
	repo   settings.Repository
	cipher stringCipher
	log    *slog.Logger
}

func NewFileStore(repo settings.Repository, cipher stringCipher, log *slog.Logger) *FileStore {
	return &FileStore{
		repo:   repo,
		cipher: cipher,
		log:    log.With("component", "file_credential_store"),
	}
}

func (f *FileStore) Name() string { return "file" }

func (f *FileStore) Set(ctx context.Context, _ string, password string) error {
	token, err := f.cipher.EncryptString(password)
	if err != nil {
		return fmt.Errorf("encrypt password: %w", err)
	}
	return f.update(ctx, token)
}

func (f *FileStore) Get(ctx context.Context, _ string) (string, bool) {
	s, err := f.repo.Load(ctx)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(s.PasswordEnc)
	if token == "" {
		return "", false
	}
	pw, err := f.cipher.DecryptString(token)
	if err != nil {
		f.log.Warn("stored password cannot be decrypted", "error", err)
		return "", false
	}
	return pw, true
}

func (f *FileStore) Clear(ctx context.Context, _ string) error {
	return f.update(ctx, "")
}

func (f *FileStore) update(ctx context.Context, token string) error {
	s, err := f.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.PasswordEnc = token
	return f.repo.Save(ctx, s)
}
