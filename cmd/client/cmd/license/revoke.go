package license

import (
	"errors"
	"fmt"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

var revokeReason string

var RevokeCmd = &cobra.Command{
	Use:   "revoke <key>",
	Short: "Отозвать лицензию",
	Long: `Отзыв необратим: отозванную лицензию нельзя восстановить, повторный
отзыв не меняет дату и причину.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, err := adminService(cmd)
		if err != nil {
			return err
		}

		changed, err := svc.Revoke(cmd.Context(), args[0], revokeReason)
		switch {
		case errors.Is(err, license.ErrAudit):
			prompt.Warn("Лицензия отозвана, но запись в журнал не добавлена: %v", err)
			return nil
		case err != nil:
			return describe(err)
		case !changed:
			prompt.Warn("Лицензия не найдена или уже отозвана, изменений нет")
			return nil
		}

		prompt.OK("Лицензия %s отозвана", license.MaskKey(args[0]))
		fmt.Println("Чтобы отзыв увидели клиенты зеркала, выполните 'licensekeeper license sync'.")
		return nil
	},
}

func init() {
	RevokeCmd.Flags().StringVarP(&revokeReason, "reason", "r", "", "причина отзыва")
}
