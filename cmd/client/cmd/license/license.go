package license

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/admin"
	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/app/client"
	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

// LicenseCmd - родительская команда для всех операций с лицензиями
var LicenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Управление лицензиями",
	Long:  `Выдача, просмотр, отзыв, проверка и экспорт лицензионных ключей.`,
}

// adminService проверяет мастер-пароль и возвращает сервис лицензий
func adminService(cmd *cobra.Command) (*client.App, *license.Service, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.Licenses()
	if err != nil {
		return nil, nil, describe(err)
	}
	if err := admin.Authorize(cmd); err != nil {
		return nil, nil, describe(err)
	}
	return app, svc, nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, config.ErrMissingSecret):
		return fmt.Errorf("SECRET_KEY не задан, сгенерируйте ключ командой 'licensekeeper keygen'")
	case errors.Is(err, client.ErrMirrorNotConfigured):
		return fmt.Errorf("зеркало не настроено: задайте MIRROR_ADDRESS или флаг --mirror")
	case errors.Is(err, license.ErrDecryption):
		return fmt.Errorf("не удается прочитать базу лицензий: неверный SECRET_KEY или поврежденный файл")
	case errors.Is(err, license.ErrNotFound):
		return fmt.Errorf("лицензия не найдена")
	default:
		return err
	}
}

func status(rec license.Record) string {
	if rec.Revoked {
		return "отозвана"
	}
	return "активна"
}
