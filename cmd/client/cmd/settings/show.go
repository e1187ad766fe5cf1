package settings

import (
	"fmt"
	"strings"

	"licensekeeper/internal/app/client/crypto"
	"licensekeeper/internal/domain/license"

	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать настройки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := manager(cmd)
		if err != nil {
			return err
		}
		s, err := mgr.Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		password := "(не сохранен)"
		if p, ok := mgr.GetPassword(cmd.Context(), s.Email); ok && p != "" {
			password = crypto.MaskSecret(p)
		}

		fmt.Fprintf(out, "provider:          %s\n", s.Provider)
		fmt.Fprintf(out, "email:             %s\n", s.Email)
		fmt.Fprintf(out, "remember_email:    %t\n", s.RememberEmail)
		fmt.Fprintf(out, "remember_password: %t\n", s.RememberPassword)
		fmt.Fprintf(out, "remember_license:  %t\n", s.RememberLicense)
		fmt.Fprintf(out, "license_key:       %s\n", license.MaskKey(s.LicenseKey))
		fmt.Fprintf(out, "from_email:        %s\n", s.Filters.FromEmail)
		fmt.Fprintf(out, "subject:           %s\n", s.Filters.Subject)
		fmt.Fprintf(out, "date_from:         %s\n", s.Filters.DateFrom)
		fmt.Fprintf(out, "date_to:           %s\n", s.Filters.DateTo)
		fmt.Fprintf(out, "file_exts:         %s\n", strings.Join(s.Filters.FileExts, ","))
		fmt.Fprintf(out, "password:          %s [%s]\n", password, mgr.CredentialStoreName())
		return nil
	},
}
