package license

import "time"

const (
	DatabaseVersion = 1

	ActionGenerate = "GENERATE"
	ActionRevoke   = "REVOKE"
)

// Record is one issued license. Revocation is one-way: RevokedAt and
// RevokedReason are only written together with Revoked=true.
type Record struct {
	Key           string     `json:"key"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Notes         string     `json:"notes"`
	IssuedAt      time.Time  `json:"issued_at"`
	Revoked       bool       `json:"revoked"`
	RevokedAt     *time.Time `json:"revoked_at"`
	RevokedReason string     `json:"revoked_reason"`
}

// Database is the whole encrypted document. It is always read and
// written as a unit.
type Database struct {
	Version  int      `json:"version"`
	Licenses []Record `json:"licenses"`
}

func NewDatabase() *Database {
	return &Database{Version: DatabaseVersion, Licenses: []Record{}}
}

func (db *Database) index(key string) int {
	for i := range db.Licenses {
		if NormalizeKey(db.Licenses[i].Key) == key {
			return i
		}
	}
	return -1
}

func (db *Database) Has(key string) bool {
	return db.index(NormalizeKey(key)) >= 0
}

// Receipt is the plaintext issuance file handed to the license holder.
// It never carries revocation state.
type Receipt struct {
	LicenseKey string    `json:"license_key"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IssuedAt   time.Time `json:"issued_at"`
	Notes      string    `json:"notes"`
}

func NewReceipt(rec Record) Receipt {
	return Receipt{
		LicenseKey: rec.Key,
		Name:       rec.Name,
		Email:      rec.Email,
		IssuedAt:   rec.IssuedAt,
		Notes:      rec.Notes,
	}
}

// AuditEntry is one line of the append-only history.
type AuditEntry struct {
	TS     time.Time `json:"ts"`
	Action string    `json:"action"`
	Key    string    `json:"key"`
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email,omitempty"`
	Notes  string    `json:"notes,omitempty"`
	File   string    `json:"file,omitempty"`
	Reason string    `json:"reason,omitempty"`
}

type GenerateRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
	Notes string `json:"notes" validate:"max=2000"`
}

type IssueResult struct {
	Key        string
	ExportPath string
	Record     Record
}
