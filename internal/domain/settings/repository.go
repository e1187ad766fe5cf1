package settings

import "context"

type Repository interface {
	// Load falls back to Defaults when the file is missing or unreadable.
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

// CredentialStore keeps the mail password per account email.
type CredentialStore interface {
	Set(ctx context.Context, email, password string) error
	// Get reports false when nothing usable is stored.
	Get(ctx context.Context, email string) (string, bool)
	Clear(ctx context.Context, email string) error
	Name() string
}
