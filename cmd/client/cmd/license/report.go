package license

import (
	"fmt"
	"path/filepath"
	"time"

	"licensekeeper/cmd/client/cmd/prompt"

	"github.com/spf13/cobra"
)

var (
	reportOut     string
	reportHistory bool
)

var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Выгрузить лицензии в xlsx",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _, err := adminService(cmd)
		if err != nil {
			return err
		}

		out := reportOut
		if out == "" {
			out = fmt.Sprintf("licenses_%s.xlsx", time.Now().Format("20060102_150405"))
		}
		if filepath.Ext(out) != ".xlsx" {
			out += ".xlsx"
		}

		if err := app.Report(cmd.Context(), out, reportHistory); err != nil {
			return describe(err)
		}
		prompt.OK("Отчет сохранен: %s", out)
		return nil
	},
}

func init() {
	ReportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "файл отчета (.xlsx)")
	ReportCmd.Flags().BoolVar(&reportHistory, "history", true, "добавить лист с журналом")
}
