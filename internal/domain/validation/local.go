package validation

import (
	"context"
	"errors"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

type licenseGetter interface {
	Get(ctx context.Context, key string) (*license.Record, error)
}

// LocalSource serves lookups from the encrypted local store.
type LocalSource struct {
	licenses licenseGetter
}

func NewLocalSource(licenses licenseGetter) *LocalSource {
	return &LocalSource{licenses: licenses}
}

func (s *LocalSource) Lookup(ctx context.Context, key string) (*mirror.Entry, error) {
	rec, err := s.licenses.Get(ctx, key)
	if errors.Is(err, license.ErrNotFound) {
		return nil, mirror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return EntryFromRecord(*rec), nil
}

func EntryFromRecord(rec license.Record) *mirror.Entry {
	e := &mirror.Entry{
		LicenseKey:    rec.Key,
		Name:          rec.Name,
		Email:         rec.Email,
		IsRevoked:     rec.Revoked,
		RevokedReason: rec.RevokedReason,
		UpdatedAt:     rec.IssuedAt,
	}
	if rec.RevokedAt != nil {
		e.UpdatedAt = *rec.RevokedAt
	}
	return e
}
