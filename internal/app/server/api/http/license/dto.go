package license

import (
	"time"

	"licensekeeper/internal/domain/mirror"
)

type keyInput struct {
	Key string `path:"key" maxLength:"128" example:"DTE-0A1B2C3D-4E5F6071-8293A4B5-C6D7E8F9" doc:"License key"`
}

type lookupOutput struct {
	Body mirror.Entry
}

type upsertInput struct {
	Key  string `path:"key" maxLength:"128" doc:"License key"`
	Body statusRequest
}

type statusRequest struct {
	LicenseKey    string    `json:"license_key,omitempty" doc:"Ignored, the path key wins"`
	Name          string    `json:"name,omitempty" maxLength:"200" doc:"Licensee name"`
	Email         string    `json:"email,omitempty" maxLength:"254" doc:"Licensee email"`
	IssuedAt      time.Time `json:"issued_at,omitempty" doc:"Issue time"`
	IsRevoked     bool      `json:"is_revoked,omitempty" doc:"Revocation flag, never cleared once set"`
	RevokedReason string    `json:"revoked_reason,omitempty" maxLength:"1024" doc:"Revocation reason"`
}

type preferencesInput struct {
	Key  string `path:"key" maxLength:"128" doc:"License key"`
	Body preferencesRequest
}

type preferencesRequest struct {
	Email       string `json:"saved_email,omitempty" maxLength:"254" doc:"Saved mailbox address"`
	PasswordEnc string `json:"password_enc,omitempty" maxLength:"4096" doc:"Client-side encrypted mailbox password"`
	Extensions  string `json:"saved_extensions,omitempty" maxLength:"1024" doc:"Comma separated attachment extensions"`
}

func (r statusRequest) toUpdate(key string) mirror.StatusUpdate {
	return mirror.StatusUpdate{
		LicenseKey:    key,
		Name:          r.Name,
		Email:         r.Email,
		IssuedAt:      r.IssuedAt,
		IsRevoked:     r.IsRevoked,
		RevokedReason: r.RevokedReason,
	}
}

func (r preferencesRequest) toPreferences() mirror.Preferences {
	return mirror.Preferences{
		Email:       r.Email,
		PasswordEnc: r.PasswordEnc,
		Extensions:  r.Extensions,
	}
}
