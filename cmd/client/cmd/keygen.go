package cmd

import (
	"fmt"

	"licensekeeper/internal/app/client/crypto"

	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Сгенерировать новый SECRET_KEY",
	Long: `Печатает новый 32-байтный ключ шифрования в base64.

Ключ задается один раз через переменную SECRET_KEY. Смена ключа делает
существующую базу лицензий нечитаемой.`,
	// Ключ нужен до того, как появится конфигурация
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := crypto.GenerateKey()
		if err != nil {
			return fmt.Errorf("ошибка генерации ключа: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), key)
		return nil
	},
}
