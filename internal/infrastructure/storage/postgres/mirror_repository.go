package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/mirror"
)

type MirrorRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
	now  func() time.Time
}

var _ mirror.Repository = (*MirrorRepository)(nil)

func NewMirrorRepository(pool *pgxpool.Pool, log *slog.Logger) *MirrorRepository {
	return &MirrorRepository{
		pool: pool,
		log:  log.With("component", "mirror_repository"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *MirrorRepository) Get(ctx context.Context, key string) (*mirror.Entry, error) {
	const query = `
		SELECT license_key, name, email, is_revoked, revoked_reason,
		       saved_email, password_enc, saved_extensions, updated_at
		FROM mirror_licenses
		WHERE license_key = $1`

	var e mirror.Entry
	err := r.pool.QueryRow(ctx, query, key).Scan(
		&e.LicenseKey, &e.Name, &e.Email, &e.IsRevoked, &e.RevokedReason,
		&e.SavedEmail, &e.PasswordEnc, &e.SavedExtensions, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, mirror.ErrNotFound
	}
	if err != nil {
		r.log.Error("failed to get license", "error", err)
		return nil, fmt.Errorf("%w: get license: %w", mirror.ErrUnavailable, err)
	}
	return &e, nil
}

// UpsertStatus keeps is_revoked sticky and the first revocation reason.
func (r *MirrorRepository) UpsertStatus(ctx context.Context, u mirror.StatusUpdate) error {
	const query = `
		INSERT INTO mirror_licenses (license_key, name, email, issued_at, is_revoked, revoked_reason, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (license_key) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			issued_at = COALESCE(mirror_licenses.issued_at, EXCLUDED.issued_at),
			is_revoked = mirror_licenses.is_revoked OR EXCLUDED.is_revoked,
			revoked_reason = CASE WHEN mirror_licenses.is_revoked
				THEN mirror_licenses.revoked_reason ELSE EXCLUDED.revoked_reason END,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		u.LicenseKey, u.Name, u.Email, nullableTime(u.IssuedAt), u.IsRevoked, u.RevokedReason, r.now())
	if err != nil {
		r.log.Error("failed to upsert license", "error", err)
		return fmt.Errorf("%w: upsert license: %w", mirror.ErrUnavailable, err)
	}
	return nil
}

func (r *MirrorRepository) UpdatePreferences(ctx context.Context, key string, p mirror.Preferences) error {
	const query = `
		UPDATE mirror_licenses
		SET saved_email = $2, password_enc = $3, saved_extensions = $4, updated_at = $5
		WHERE license_key = $1`

	tag, err := r.pool.Exec(ctx, query, key, p.Email, p.PasswordEnc, p.Extensions, r.now())
	if err != nil {
		r.log.Error("failed to update preferences", "error", err)
		return fmt.Errorf("%w: update preferences: %w", mirror.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return mirror.ErrNotFound
	}
	return nil
}

func (r *MirrorRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
