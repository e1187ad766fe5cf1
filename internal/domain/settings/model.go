package settings

const DefaultProvider = "gmail"

// Settings holds non-critical local preferences. PasswordEnc is only used
// when no OS credential store is available.
type Settings struct {
	Provider         string  `json:"provider"`
	Email            string  `json:"email"`
	RememberEmail    bool    `json:"remember_email"`
	RememberPassword bool    `json:"remember_password"`
	RememberLicense  bool    `json:"remember_license"`
	LicenseKey       string  `json:"license_key"`
	Filters          Filters `json:"filters"`
	PasswordEnc      string  `json:"password_enc"`
}

type Filters struct {
	FromEmail string   `json:"from_email"`
	Subject   string   `json:"subject"`
	DateFrom  string   `json:"date_from"`
	DateTo    string   `json:"date_to"`
	FileExts  []string `json:"file_exts"`
}

func Defaults() Settings {
	return Settings{
		Provider:         DefaultProvider,
		RememberEmail:    true,
		RememberPassword: true,
		RememberLicense:  true,
		Filters: Filters{
			FileExts: []string{".json"},
		},
	}
}
