package settings

import (
	"errors"
	"fmt"
	"strings"

	"licensekeeper/cmd/client/cmd/prompt"
	"licensekeeper/internal/domain/settings"

	"github.com/spf13/cobra"
)

var SetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Изменить настройку",
	Long:  "Доступные ключи: " + strings.Join(settings.Keys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := manager(cmd)
		if err != nil {
			return err
		}

		if _, err := mgr.Set(cmd.Context(), args[0], args[1]); err != nil {
			switch {
			case errors.Is(err, settings.ErrUnknownKey):
				return fmt.Errorf("неизвестный ключ %q, доступны: %s", args[0], strings.Join(settings.Keys(), ", "))
			case errors.Is(err, settings.ErrInvalidValue):
				return fmt.Errorf("некорректное значение для %s: %w", args[0], err)
			default:
				return err
			}
		}

		prompt.OK("%s обновлен", args[0])
		return nil
	},
}
