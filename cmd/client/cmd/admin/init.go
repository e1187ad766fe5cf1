package admin

import (
	"fmt"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var force bool

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Задать мастер-пароль",
	Long: `Создает запись мастер-пароля (PBKDF2-SHA256, 200 000 итераций).

Если пароль уже задан, команда ничего не меняет. Флаг --force перезаписывает
существующий пароль без проверки старого.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		verifier := app.Verifier()
		if verifier.IsConfigured(cmd.Context()) && !force {
			fmt.Println("Мастер-пароль уже задан. Для смены используйте 'admin change-password'.")
			return nil
		}

		fmt.Println("=== Установка мастер-пароля ===")
		password, err := prompt.NewPassword("Новый мастер-пароль: ")
		if err != nil {
			return err
		}
		if err := validateNew(password); err != nil {
			return err
		}

		if err := verifier.SetPassword(cmd.Context(), password); err != nil {
			return fmt.Errorf("ошибка сохранения мастер-пароля: %w", err)
		}

		prompt.OK("Мастер-пароль сохранен в %s", app.Layout().AdminPath())
		if err := app.Config().RequireSecret(); err != nil {
			prompt.Warn("SECRET_KEY не задан. Сгенерируйте его командой 'licensekeeper keygen'.")
		}
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&force, "force", false, "перезаписать существующий мастер-пароль")
}
