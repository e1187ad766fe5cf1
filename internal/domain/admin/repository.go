package admin

import "context"

type Repository interface {
	// Exists reports whether a verifier record is stored.
	Exists(ctx context.Context) (bool, error)
	// Load returns ErrNotConfigured when nothing is stored.
	Load(ctx context.Context) (Record, error)
	// Save replaces any previous record.
	Save(ctx context.Context, rec Record) error
}
