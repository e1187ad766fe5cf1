package license

import (
	"context"
	"time"
)

type Repository interface {
	// Load returns an empty database when nothing was stored yet and
	// ErrDecryption when the stored blob cannot be read.
	Load(ctx context.Context) (*Database, error)
	// Update runs fn inside one locked read-modify-write cycle. The
	// database is written only when fn reports a change.
	Update(ctx context.Context, fn func(db *Database) (bool, error)) error
}

type Exporter interface {
	Export(ctx context.Context, rec Record, at time.Time) (string, error)
}

type AuditLog interface {
	Append(ctx context.Context, entry AuditEntry) error
}
