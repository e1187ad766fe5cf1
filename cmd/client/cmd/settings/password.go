package settings

import (
	"fmt"

	"licensekeeper/cmd/client/cmd/prompt"

	"github.com/spf13/cobra"
)

var clearPassword bool

var PasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Сохранить или удалить пароль почты",
	Long: `Пароль привязывается к email из настроек. Без email команда ничего не делает.
Флаг --clear удаляет сохраненный пароль.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := manager(cmd)
		if err != nil {
			return err
		}
		s, err := mgr.Load(cmd.Context())
		if err != nil {
			return err
		}
		if s.Email == "" {
			return fmt.Errorf("email не задан: 'licensekeeper settings set email <адрес>'")
		}

		if clearPassword {
			if err := mgr.ClearPassword(cmd.Context(), s.Email); err != nil {
				return err
			}
			prompt.OK("Пароль для %s удален", s.Email)
			return nil
		}

		password, err := prompt.Password(fmt.Sprintf("Пароль для %s: ", s.Email))
		if err != nil {
			return err
		}
		if err := mgr.SetPassword(cmd.Context(), s.Email, password); err != nil {
			return err
		}
		prompt.OK("Пароль сохранен (%s)", mgr.CredentialStoreName())
		return nil
	},
}

func init() {
	PasswordCmd.Flags().BoolVar(&clearPassword, "clear", false, "удалить сохраненный пароль")
}
