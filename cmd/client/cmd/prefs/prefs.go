package prefs

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/app/client"
	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/domain/mirror"

	"github.com/spf13/cobra"
)

// PrefsCmd - настройки аккаунта, сохраненные на зеркале рядом с лицензией
var PrefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Настройки аккаунта на зеркале",
	Long: `Почта, пароль и расширения файлов, привязанные к лицензии.
Пароль шифруется локально и уходит на зеркало только в зашифрованном виде.`,
}

// licenseKey берет ключ из аргумента или из локальных настроек
func licenseKey(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	app, err := types.App(cmd)
	if err != nil {
		return "", err
	}
	mgr, err := app.Settings()
	if err != nil {
		return "", describe(err)
	}
	s, err := mgr.Load(cmd.Context())
	if err != nil {
		return "", err
	}
	if s.LicenseKey == "" {
		return "", fmt.Errorf("укажите ключ лицензии или сохраните его: 'licensekeeper settings set license_key <key>'")
	}
	return s.LicenseKey, nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, config.ErrMissingSecret):
		return fmt.Errorf("SECRET_KEY не задан, сгенерируйте ключ командой 'licensekeeper keygen'")
	case errors.Is(err, client.ErrMirrorNotConfigured):
		return fmt.Errorf("зеркало не настроено: задайте MIRROR_ADDRESS или флаг --mirror")
	case errors.Is(err, mirror.ErrNotFound):
		return fmt.Errorf("лицензия не найдена на зеркале")
	case errors.Is(err, mirror.ErrUnavailable):
		return fmt.Errorf("зеркало недоступно, повторите позже: %w", err)
	default:
		return err
	}
}
