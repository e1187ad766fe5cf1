package validation

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"
)

type Status string

const (
	StatusValid           Status = "valid"
	StatusRevoked         Status = "revoked"
	StatusNotFound        Status = "not_found"
	StatusConnectionError Status = "connection_error"
	StatusError           Status = "error"
)

const msgConnection = "cannot reach the license server, try again"

// Source answers lookups with mirror.ErrNotFound or mirror.ErrUnavailable.
type Source interface {
	Lookup(ctx context.Context, key string) (*mirror.Entry, error)
}

type Outcome struct {
	Status  Status
	Message string
	// Entry is set only for valid licenses.
	Entry *mirror.Entry
}

func (o Outcome) Valid() bool {
	return o.Status == StatusValid
}

// Retryable separates transient failures from authoritative rejections.
func (o Outcome) Retryable() bool {
	return o.Status == StatusConnectionError
}

type Validator struct {
	source Source
	log    *slog.Logger
}

func NewValidator(source Source, log *slog.Logger) *Validator {
	return &Validator{
		source: source,
		log:    log.With("component", "license_validator"),
	}
}

func (v *Validator) Validate(ctx context.Context, key string) Outcome {
	key = strings.TrimSpace(key)
	if key == "" {
		return Outcome{Status: StatusNotFound, Message: license.MsgNotFound}
	}

	entry, err := v.source.Lookup(ctx, key)
	switch {
	case errors.Is(err, mirror.ErrNotFound):
		return Outcome{Status: StatusNotFound, Message: license.MsgNotFound}
	case errors.Is(err, mirror.ErrUnavailable):
		v.log.Warn("license source unavailable", "key", license.MaskKey(key), "error", err)
		return Outcome{Status: StatusConnectionError, Message: msgConnection}
	case err != nil:
		v.log.Error("license lookup failed", "key", license.MaskKey(key), "error", err)
		return Outcome{Status: StatusError, Message: license.MsgUnreadable}
	case entry.IsRevoked:
		return Outcome{Status: StatusRevoked, Message: license.RevokedMessage(entry.RevokedReason)}
	}

	return Outcome{Status: StatusValid, Message: license.MsgValid, Entry: entry}
}
