package types

import (
	"errors"

	"licensekeeper/internal/app/client"

	"github.com/spf13/cobra"
)

type contextKey string

// ClientAppKey - ключ, под которым root кладет *client.App в контекст команды
const ClientAppKey contextKey = "client_app"

var ErrNotInitialized = errors.New("приложение не инициализировано")

// App достает приложение из контекста команды
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
