package license

import (
	"licensekeeper/cmd/client/cmd/prompt"

	"github.com/spf13/cobra"
)

var ExportCmd = &cobra.Command{
	Use:   "export <key>",
	Short: "Заново выписать квитанцию лицензии",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, svc, err := adminService(cmd)
		if err != nil {
			return err
		}

		path, err := svc.Export(cmd.Context(), args[0])
		if err != nil {
			return describe(err)
		}
		prompt.OK("Квитанция сохранена: %s", path)
		return nil
	},
}
