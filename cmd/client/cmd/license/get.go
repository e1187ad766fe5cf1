package license

import (
	"fmt"

	"github.com/spf13/cobra"
)

var GetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Показать лицензию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, err := adminService(cmd)
		if err != nil {
			return err
		}

		rec, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return describe(err)
		}

		fmt.Printf("Ключ:      %s\n", rec.Key)
		fmt.Printf("Владелец:  %s\n", rec.Name)
		if rec.Email != "" {
			fmt.Printf("Email:     %s\n", rec.Email)
		}
		if rec.Notes != "" {
			fmt.Printf("Заметки:   %s\n", rec.Notes)
		}
		fmt.Printf("Выдана:    %s\n", rec.IssuedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Статус:    %s\n", status(*rec))
		if rec.RevokedAt != nil {
			fmt.Printf("Отозвана:  %s\n", rec.RevokedAt.Format("2006-01-02 15:04:05"))
		}
		if rec.RevokedReason != "" {
			fmt.Printf("Причина:   %s\n", rec.RevokedReason)
		}
		return nil
	},
}
