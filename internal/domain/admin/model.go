package admin

import "time"

const (
	KDFPBKDF2SHA256 = "pbkdf2_sha256"
	KDFArgon2id     = "argon2id"
)

// Record is the persisted verifier. The password itself is never stored.
type Record struct {
	KDF        string    `json:"kdf"`
	Iterations int       `json:"iterations"`
	SaltB64    string    `json:"salt_b64"`
	HashB64    string    `json:"hash_b64"`
	CreatedAt  time.Time `json:"created_at"`
}
