package prefs

import (
	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/domain/preferences"

	"github.com/spf13/cobra"
)

var (
	saveEmail      string
	saveExtensions []string
	saveNoPassword bool
)

var SaveCmd = &cobra.Command{
	Use:   "save [key]",
	Short: "Сохранить настройки аккаунта",
	Long: `Перезаписывает сохраненные на зеркале почту, пароль и расширения.
Пустой пароль удаляет сохраненный.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		svc, err := app.Preferences()
		if err != nil {
			return describe(err)
		}
		key, err := licenseKey(cmd, args)
		if err != nil {
			return err
		}

		if saveEmail == "" {
			if saveEmail, err = prompt.Line("Email", ""); err != nil {
				return err
			}
		}
		var password string
		if !saveNoPassword {
			if password, err = prompt.Password("Пароль почты (пусто - не сохранять): "); err != nil {
				return err
			}
		}

		view := preferences.View{
			Email:      saveEmail,
			Password:   password,
			Extensions: saveExtensions,
		}
		if err := svc.Save(cmd.Context(), key, view); err != nil {
			return describe(err)
		}

		prompt.OK("Настройки сохранены (расширения: %s)", preferences.JoinExtensions(saveExtensions))
		return nil
	},
}

func init() {
	SaveCmd.Flags().StringVarP(&saveEmail, "email", "e", "", "адрес почты")
	SaveCmd.Flags().StringSliceVar(&saveExtensions, "ext", []string{".json"}, "расширения вложений")
	SaveCmd.Flags().BoolVar(&saveNoPassword, "no-password", false, "не сохранять пароль")
}
