package settings

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/domain/settings"

	"github.com/spf13/cobra"
)

// SettingsCmd - локальные настройки клиента (settings.json)
var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Локальные настройки",
	Long: `Просмотр и изменение settings.json. Пароль почты хранится в системном
хранилище ключей, а если оно недоступно - в settings.json в зашифрованном виде.`,
}

func manager(cmd *cobra.Command) (*settings.Manager, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}
	mgr, err := app.Settings()
	if errors.Is(err, config.ErrMissingSecret) {
		return nil, fmt.Errorf("SECRET_KEY не задан, сгенерируйте ключ командой 'licensekeeper keygen'")
	}
	return mgr, err
}
