package prefs

import (
	"fmt"
	"strings"

	"licensekeeper/cmd/client/cmd/types"
	"licensekeeper/internal/app/client/crypto"

	"github.com/spf13/cobra"
)

var showReveal bool

var ShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Показать настройки аккаунта",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		svc, err := app.Preferences()
		if err != nil {
			return describe(err)
		}
		key, err := licenseKey(cmd, args)
		if err != nil {
			return err
		}

		view, err := svc.Load(cmd.Context(), key)
		if err != nil {
			return describe(err)
		}

		password := "(не сохранен)"
		if view.Password != "" {
			password = crypto.MaskSecret(view.Password)
			if showReveal {
				password = view.Password
			}
		}

		fmt.Printf("Email:      %s\n", view.Email)
		fmt.Printf("Пароль:     %s\n", password)
		fmt.Printf("Расширения: %s\n", strings.Join(view.Extensions, ", "))
		return nil
	},
}

func init() {
	ShowCmd.Flags().BoolVar(&showReveal, "reveal", false, "показать пароль целиком")
}
