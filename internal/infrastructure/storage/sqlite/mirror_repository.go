package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/mirror"
)

type MirrorRepository struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

var _ mirror.Repository = (*MirrorRepository)(nil)

func NewMirrorRepository(db *sql.DB, log *slog.Logger) *MirrorRepository {
	return &MirrorRepository{
		db:  db,
		log: log.With("component", "mirror_repository"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *MirrorRepository) Get(ctx context.Context, key string) (*mirror.Entry, error) {
	const query = `
		SELECT license_key, name, email, is_revoked, revoked_reason,
		       saved_email, password_enc, saved_extensions, updated_at
		FROM mirror_licenses
		WHERE license_key = ?`

	var e mirror.Entry
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&e.LicenseKey, &e.Name, &e.Email, &e.IsRevoked, &e.RevokedReason,
		&e.SavedEmail, &e.PasswordEnc, &e.SavedExtensions, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (license_key) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			issued_at = COALESCE(mirror_licenses.issued_at, excluded.issued_at),
			is_revoked = (mirror_licenses.is_revoked OR excluded.is_revoked),
			revoked_reason = CASE WHEN mirror_licenses.is_revoked
				THEN mirror_licenses.revoked_reason ELSE excluded.revoked_reason END,
			updated_at = excluded.updated_at`

	var issuedAt any
	if !u.IssuedAt.IsZero() {
		issuedAt = u.IssuedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		u.LicenseKey, u.Name, u.Email, issuedAt, u.IsRevoked, u.RevokedReason, r.now())
	if err != nil {
		r.log.Error("failed to upsert license", "error", err)
		return fmt.Errorf("%w: upsert license: %w", mirror.ErrUnavailable, err)
	}
	return nil
}

func (r *MirrorRepository) UpdatePreferences(ctx context.Context, key string, p mirror.Preferences) error {
	const query = `
		UPDATE mirror_licenses
		SET saved_email = ?, password_enc = ?, saved_extensions = ?, updated_at = ?
		WHERE license_key = ?`

	res, err := r.db.ExecContext(ctx, query, p.Email, p.PasswordEnc, p.Extensions, r.now(), key)
	if err != nil {
		r.log.Error("failed to update preferences", "error", err)
		return fmt.Errorf("%w: update preferences: %w", mirror.ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", mirror.ErrUnavailable, err)
	}
	if n == 0 {
		return mirror.ErrNotFound
	}
	return nil
}

func (r *MirrorRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
