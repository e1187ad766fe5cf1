package cmd

import (
	"licensekeeper/cmd/client/cmd/admin"
	"licensekeeper/cmd/client/cmd/license"
	"licensekeeper/cmd/client/cmd/prefs"
	"licensekeeper/cmd/client/cmd/settings"
)

func init() {
	rootCmd.AddCommand(keygenCmd)

	// Мастер-пароль администратора
	rootCmd.AddCommand(admin.AdminCmd)
	admin.AdminCmd.AddCommand(admin.InitCmd)
	admin.AdminCmd.AddCommand(admin.ChangePasswordCmd)
	admin.AdminCmd.AddCommand(admin.VerifyCmd)

	// Работа с лицензиями
	rootCmd.AddCommand(license.LicenseCmd)
	license.LicenseCmd.AddCommand(license.GenerateCmd)
	license.LicenseCmd.AddCommand(license.GetCmd)
	license.LicenseCmd.AddCommand(license.ListCmd)
	license.LicenseCmd.AddCommand(license.RevokeCmd)
	license.LicenseCmd.AddCommand(license.ValidateCmd)
	license.LicenseCmd.AddCommand(license.ExportCmd)
	license.LicenseCmd.AddCommand(license.ReportCmd)
	license.LicenseCmd.AddCommand(license.HistoryCmd)
	license.LicenseCmd.AddCommand(license.SyncCmd)

	// Настройки аккаунта на зеркале
	rootCmd.AddCommand(prefs.PrefsCmd)
	prefs.PrefsCmd.AddCommand(prefs.SaveCmd)
	prefs.PrefsCmd.AddCommand(prefs.ShowCmd)

	// Локальные настройки
	rootCmd.AddCommand(settings.SettingsCmd)
	settings.SettingsCmd.AddCommand(settings.ShowCmd)
	settings.SettingsCmd.AddCommand(settings.SetCmd)
	settings.SettingsCmd.AddCommand(settings.PasswordCmd)
}
