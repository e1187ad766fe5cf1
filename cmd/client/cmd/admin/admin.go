package admin

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/domain/admin"

	"github.com/spf13/cobra"
)

const minPasswordLength = 8

// AdminCmd - родительская команда для операций с мастер-паролем
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Мастер-пароль администратора",
	Long:  `Установка, смена и проверка мастер-пароля, которым защищены административные операции.`,
}

// Authorize запрашивает мастер-пароль перед административной операцией
func Authorize(cmd *cobra.Command) error {
	app, err := types.App(cmd)
	if err != nil {
		return err
	}

	verifier := app.Verifier()
	if !verifier.IsConfigured(cmd.Context()) {
		return fmt.Errorf("%w: выполните 'licensekeeper admin init'", admin.ErrNotConfigured)
	}

	password, err := prompt.Password("Мастер-пароль: ")
	if err != nil {
		return err
	}
	if !verifier.Verify(cmd.Context(), password) {
		return admin.ErrInvalidAuth
	}
	return nil
}

func validateNew(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("пароль должен содержать минимум %d символов", minPasswordLength)
	}
	return nil
}

func describe(err error) error {
	switch {
	case errors.Is(err, admin.ErrInvalidAuth):
		return fmt.Errorf("неверный мастер-пароль")
	case errors.Is(err, admin.ErrNotConfigured):
		return fmt.Errorf("мастер-пароль не задан, выполните 'licensekeeper admin init'")
	default:
		return err
	}
}
