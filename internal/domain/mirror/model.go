package mirror

import "time"

// Entry is the mirror's view of one license plus the account preferences
// stored next to it. PasswordEnc is always ciphertext.
type Entry struct {
	LicenseKey      string    `json:"license_key"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	IsRevoked       bool      `json:"is_revoked"`
	RevokedReason   string    `json:"revoked_reason"`
	SavedEmail      string    `json:"saved_email"`
	PasswordEnc     string    `json:"password_enc"`
	SavedExtensions string    `json:"saved_extensions"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Preferences replace the stored ones wholesale on every save.
type Preferences struct {
	Email       string `json:"saved_email" validate:"omitempty,email,max=254"`
	PasswordEnc string `json:"password_enc" validate:"max=4096"`
	Extensions  string `json:"saved_extensions" validate:"max=1024"`
}

// StatusUpdate pushes issuance and revocation state to the mirror.
type StatusUpdate struct {
	LicenseKey    string    `json:"license_key" validate:"required,max=128"`
	Name          string    `json:"name" validate:"max=200"`
	Email         string    `json:"email" validate:"max=254"`
	IssuedAt      time.Time `json:"issued_at"`
	IsRevoked     bool      `json:"is_revoked"`
	RevokedReason string    `json:"revoked_reason" validate:"max=1024"`
}
