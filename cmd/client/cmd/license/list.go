package license

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

var (
	listAll    bool
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список лицензий",
	Long: `Просмотр выданных лицензий. По умолчанию отозванные скрыты,
флаг --all показывает все.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, svc, err := adminService(cmd)
		if err != nil {
			return err
		}

		records, err := svc.List(cmd.Context(), listAll)
		if err != nil {
			return describe(err)
		}

		switch listFormat {
		case "json":
			return printRecordsJSON(records)
		default:
			return printRecordsTable(records)
		}
	},
}

func printRecordsTable(records []license.Record) error {
	if len(records) == 0 {
		fmt.Println("Лицензии не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Ключ\tВладелец\tEmail\tВыдана\tСтатус\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			rec.Key,
			truncate(rec.Name, 30),
			truncate(rec.Email, 30),
			rec.IssuedAt.Format("2006-01-02"),
			status(rec),
		)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nВсего: %d\n", len(records))
	return nil
}

func printRecordsJSON(records []license.Record) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	ListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "включая отозванные")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода: table, json")
}
