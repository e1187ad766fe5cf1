package cmd

import (
	"context"
	"fmt"
	"os"

	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/app/client"
	"licensekeeper/internal/app/client/config"
	"licensekeeper/internal/utils/logger"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var (
	cfgFile   string
	mirrorURL string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "licensekeeper",
	Short: "LicenseKeeper - выдача и проверка лицензионных ключей",
	Long: `LicenseKeeper выдает, отзывает и проверяет лицензионные ключи.

База лицензий хранится локально в зашифрованном виде (SECRET_KEY),
административные операции защищены мастер-паролем. Проверка ключей
может выполняться через удаленное зеркало (MIRROR_ADDRESS).`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if mirrorURL != "" {
		cfg.MirrorAddress = mirrorURL
	}
	var log *slog.Logger
	if debug || cfg.LogLevel == "debug" {
		log = logger.New(cfg.Env)
	} else {
		// Для CLI по умолчанию не засоряем вывод логами
		log = logger.Discard()
	}

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный вывод")
	rootCmd.PersistentFlags().StringVar(&mirrorURL, "mirror", "", "адрес зеркала лицензий")
}
