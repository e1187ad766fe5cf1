package license

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

var (
	genName  string
	genEmail string
	genNotes string
)

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Выдать новую лицензию",
	Long: `Создает лицензионный ключ вида PREFIX-XXXXXXXX-XXXXXXXX-XXXXXXXX-XXXXXXXX,
сохраняет его в зашифрованной базе, пишет квитанцию в issued/ и запись
в журнал выдачи.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, svc, err := adminService(cmd)
		if err != nil {
			return err
		}

		if genName == "" {
			if genName, err = prompt.Line("Имя владельца", ""); err != nil {
				return err
			}
		}

		res, err := svc.Generate(cmd.Context(), license.GenerateRequest{
			Name:  genName,
			Email: genEmail,
			Notes: genNotes,
		})

		var partial *license.PartialIssueError
		switch {
		case errors.As(err, &partial):
			prompt.Warn("Лицензия выдана, но шаг %q не выполнен: %v", partial.Step, partial.Err)
			prompt.Warn("Ключ сохранен в базе, повторите экспорт: licensekeeper license export %s", partial.Key)
		case err != nil:
			var de *license.DomainError
			if errors.As(err, &de) {
				return fmt.Errorf("некорректные данные: %s", de.Message)
			}
			return describe(err)
		default:
			prompt.OK("Лицензия выдана")
		}

		fmt.Printf("Ключ:      %s\n", res.Key)
		fmt.Printf("Владелец:  %s\n", res.Record.Name)
		if res.ExportPath != "" {
			fmt.Printf("Квитанция: %s\n", res.ExportPath)
		}
		return nil
	},
}

func init() {
	GenerateCmd.Flags().StringVarP(&genName, "name", "n", "", "имя владельца лицензии")
	GenerateCmd.Flags().StringVarP(&genEmail, "email", "e", "", "email владельца")
	GenerateCmd.Flags().StringVar(&genNotes, "notes", "", "заметки")
}
