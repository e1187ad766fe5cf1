package license

import (
	"fmt"
	"os"
	"text/tabwriter"

	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

var historyLimit int

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Журнал выдачи и отзыва",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _, err := adminService(cmd)
		if err != nil {
			return err
		}

		entries, err := app.History(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Журнал пуст")
			return nil
		}
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[len(entries)-historyLimit:]
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Время\tДействие\tКлюч\tПодробности\t\n")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				e.TS.Format("2006-01-02 15:04:05"),
				e.Action,
				e.Key,
				details(e),
			)
		}
		return w.Flush()
	},
}

func details(e license.AuditEntry) string {
	if e.Action == license.ActionRevoke {
		return e.Reason
	}
	if e.Email != "" {
		return truncate(e.Name+" <"+e.Email+">", 50)
	}
	return truncate(e.Name, 50)
}

func init() {
	HistoryCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "показать последние N записей")
}
