package admin

import (
	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var ChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Сменить мастер-пароль",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		oldPassword, err := prompt.Password("Текущий мастер-пароль: ")
		if err != nil {
			return err
		}
		newPassword, err := prompt.NewPassword("Новый мастер-пароль: ")
		if err != nil {
			return err
		}
		if err := validateNew(newPassword); err != nil {
			return err
		}

		if err := app.Verifier().ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
			return describe(err)
		}

		prompt.OK("Мастер-пароль изменен")
		return nil
	},
}

var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Проверить мастер-пароль",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := Authorize(cmd); err != nil {
			return describe(err)
		}
		prompt.OK("Пароль верный")
		return nil
	},
}
