package license

import (
	"fmt"
	"time"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

var syncStatusOnly bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Отправить статусы лицензий на зеркало",
	Long: `Выгружает все локальные лицензии, включая отозванные, на удаленное
зеркало. Зеркало никогда не отменяет отзыв. Флаг --status только показывает
статистику прошлых синхронизаций.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, _, err := adminService(cmd)
		if err != nil {
			return err
		}
		syncer, err := app.Sync()
		if err != nil {
			return describe(err)
		}

		if syncStatusOnly {
			printStats(syncer.GetStats(cmd.Context()))
			return nil
		}

		remote, err := app.Mirror()
		if err != nil {
			return describe(err)
		}
		fmt.Println("Проверка соединения с зеркалом...")
		if err := remote.HealthCheck(cmd.Context()); err != nil {
			return fmt.Errorf("зеркало недоступно, синхронизация отменена: %w", err)
		}

		fmt.Println("Синхронизация с зеркалом...")
		result, err := syncer.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка синхронизации: %w", err)
		}

		fmt.Printf("Отправлено: %d (отозванных: %d) за %s\n", result.Uploaded, result.Revoked, result.Duration.Round(time.Millisecond))
		printStats(syncer.GetStats(cmd.Context()))
		if !result.Success {
			for _, e := range result.Errors {
				prompt.Fail("%s: %s", e.Key, e.Error)
			}
			return fmt.Errorf("синхронизация завершена с ошибками (%d)", len(result.Errors))
		}
		prompt.OK("Данные синхронизированы")
		return nil
	},
}

func printStats(stats client.SyncStats) {
	fmt.Printf("Всего синхронизаций: %d, отправлено: %d, ошибок: %d\n",
		stats.TotalSyncs, stats.TotalUploaded, stats.TotalErrors)
	fmt.Printf("Последняя успешная:  %s\n", formatTime(stats.LastSuccessful))
	fmt.Printf("Последняя с ошибкой: %s\n", formatTime(stats.LastFailed))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatusOnly, "status", false, "показать статистику без синхронизации")
}
