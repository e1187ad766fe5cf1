package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/app/client/crypto"
	"licensekeeper/internal/domain/admin"
	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/preferences"
	"licensekeeper/internal/domain/settings"
	"licensekeeper/internal/domain/validation"
	"licensekeeper/internal/infrastructure/credstore"
	"licensekeeper/internal/infrastructure/report"
	"licensekeeper/internal/infrastructure/storage/file"
)

var ErrMirrorNotConfigured = errors.New("MIRROR_ADDRESS is not set")

// App собирает все компоненты клиента. Части, которым нужен SECRET_KEY
// или зеркало, создаются только при наличии настроек.
type App struct {
	config   *config.Config
	log      *slog.Logger
	layout   file.Layout
	verifier *admin.Verifier

	cipher   *crypto.Cipher
	licenses *license.Service
	audit    *file.AuditLog

	// Хранилище паролей выбирается при первом обращении к настройкам:
	// проверка keyring может требовать разблокировки связки ключей.
	settingsOnce sync.Once
	settings     *settings.Manager
	mirror       *MirrorClient
	prefs        *preferences.Service
	sync         *SyncService
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	layout, err := file.NewLayout(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:   cfg,
		log:      log,
		layout:   layout,
		verifier: admin.NewVerifier(file.NewAdminRepository(layout), log),
		audit:    file.NewAuditLog(layout, log),
	}

	if cfg.HasMirror() {
		app.mirror = NewMirrorClient(cfg, log)
	}

	if cfg.SecretKey == "" {
		log.Debug("SECRET_KEY не задан, зашифрованное хранилище недоступно")
		return app, nil
	}

	// Инициализируем шифрование
	cipher, err := crypto.NewCipherFromString(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации шифрования: %w", err)
	}
	app.cipher = cipher

	keys, err := license.NewKeyGenerator(cfg.KeyPrefix)
	if err != nil {
		return nil, err
	}
	app.licenses = license.NewService(
		file.NewLicenseRepository(layout, cipher, log),
		file.NewExporter(layout),
		app.audit,
		keys,
		log,
	)

	if app.mirror != nil {
		app.prefs = preferences.NewService(app.mirror, cipher, log)
		app.sync = NewSyncService(app.licenses, app.mirror, file.NewSyncStateRepository(layout, log), SyncConfig{
			MaxRetries: cfg.SyncRetries,
			RetryDelay: cfg.SyncRetryDelay,
		}, log)
	}

	return app, nil
}

func (a *App) Config() *config.Config { return a.config }
func (a *App) Layout() file.Layout    { return a.layout }

// Verifier доступен без SECRET_KEY
func (a *App) Verifier() *admin.Verifier {
	return a.verifier
}

func (a *App) Licenses() (*license.Service, error) {
	if a.licenses == nil {
		return nil, config.ErrMissingSecret
	}
	return a.licenses, nil
}

func (a *App) Settings() (*settings.Manager, error) {
	if a.cipher == nil {
		return nil, config.ErrMissingSecret
	}
	a.settingsOnce.Do(func() {
		repo := file.NewSettingsRepository(a.layout, a.log)
		creds := credstore.Select(
			credstore.NewKeyringStore(a.config.KeyringService),
			credstore.NewFileStore(repo, a.cipher, a.log),
			a.log,
		)
		a.settings = settings.NewManager(repo, creds, a.log)
	})
	return a.settings, nil
}

func (a *App) Mirror() (*MirrorClient, error) {
	if a.mirror == nil {
		return nil, ErrMirrorNotConfigured
	}
	return a.mirror, nil
}

func (a *App) Preferences() (*preferences.Service, error) {
	if a.cipher == nil {
		return nil, config.ErrMissingSecret
	}
	if a.prefs == nil {
		return nil, ErrMirrorNotConfigured
	}
	return a.prefs, nil
}

func (a *App) Sync() (*SyncService, error) {
	if a.licenses == nil {
		return nil, config.ErrMissingSecret
	}
	if a.sync == nil {
		return nil, ErrMirrorNotConfigured
	}
	return a.sync, nil
}

// Validator проверяет ключи через зеркало, если оно настроено,
// иначе по локальной базе
func (a *App) Validator(preferLocal bool) (*validation.Validator, error) {
	if a.mirror != nil && !preferLocal {
		return validation.NewValidator(a.mirror, a.log), nil
	}
	if a.licenses == nil {
		return nil, config.ErrMissingSecret
	}
	return validation.NewValidator(validation.NewLocalSource(a.licenses), a.log), nil
}

// History читает журнал выдачи и отзыва
func (a *App) History(ctx context.Context) ([]license.AuditEntry, error) {
	return a.audit.Entries(ctx)
}

// Report сохраняет лицензии (и при необходимости журнал) в xlsx
func (a *App) Report(ctx context.Context, path string, withHistory bool) error {
	licenses, err := a.Licenses()
	if err != nil {
		return err
	}
	records, err := licenses.List(ctx, true)
	if err != nil {
		return err
	}

	var history []license.AuditEntry
	if withHistory {
		if history, err = a.History(ctx); err != nil {
			return err
		}
	}
	return report.WriteXLSX(path, records, history)
}
