package license

import (
	"fmt"
	"os"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/domain/validation"

	"github.com/spf13/cobra"
)

var validateLocal bool

var ValidateCmd = &cobra.Command{
	Use:   "validate <key>",
	Short: "Проверить лицензионный ключ",
	Long: `Проверяет ключ через зеркало, если задан MIRROR_ADDRESS, иначе по
локальной базе. Флаг --local всегда использует локальную базу.

Код выхода: 0 - ключ действителен, 1 - недействителен, 2 - зеркало недоступно.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		v, err := app.Validator(validateLocal)
		if err != nil {
			return describe(err)
		}

		outcome := v.Validate(cmd.Context(), args[0])
		switch outcome.Status {
		case validation.StatusValid:
			prompt.OK("Ключ действителен")
			if outcome.Entry != nil && outcome.Entry.Name != "" {
				fmt.Printf("Владелец: %s\n", outcome.Entry.Name)
			}
			return nil
		case validation.StatusConnectionError:
			prompt.Warn("Сервер лицензий недоступен: %s", outcome.Message)
			os.Exit(2)
		default:
			prompt.Fail("Ключ недействителен: %s", outcome.Message)
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	ValidateCmd.Flags().BoolVar(&validateLocal, "local", false, "проверять по локальной базе")
}
