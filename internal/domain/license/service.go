package license

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
)

const (
	MsgValid      = "valid"
	MsgNotFound   = "not found"
	MsgRevoked    = "revoked"
	MsgUnreadable = "cannot read stored data"

	keyAttempts = 5
)

type Servicer interface {
	Generate(ctx context.Context, req GenerateRequest) (IssueResult, error)
	Get(ctx context.Context, key string) (*Record, error)
	List(ctx context.Context, includeRevoked bool) ([]Record, error)
	Revoke(ctx context.Context, key, reason string) (bool, error)
	Validate(ctx context.Context, key string) (bool, string)
	Export(ctx context.Context, key string) (string, error)
}

// Service issues and revokes licenses against the encrypted store.
type Service struct {
	repo     Repository
	exporter Exporter
	audit    AuditLog
	keys     KeyGenerator
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, exporter Exporter, audit AuditLog, keys KeyGenerator, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		exporter: exporter,
		audit:    audit,
		keys:     keys,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("component", "license_service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Generate persists a new license, then writes its receipt and audit entry.
// The database write is authoritative: if a later step fails the key is
// still returned together with a *PartialIssueError.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (IssueResult, error) {
	req = GenerateRequest{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Notes: strings.TrimSpace(req.Notes),
	}
	if err := s.validate.Struct(req); err != nil {
		return IssueResult{}, &DomainError{
			Err:     ErrInvalidInput,
			Message: describeValidation(err),
			Code:    CodeInvalidInput,
		}
	}

	var rec Record
	err := s.repo.Update(ctx, func(db *Database) (bool, error) {
		key, err := s.uniqueKey(db)
		if err != nil {
			return false, err
		}
		rec = Record{
			Key:      key,
			Name:     req.Name,
			Email:    req.Email,
			Notes:    req.Notes,
			IssuedAt: s.now(),
		}
		db.Licenses = append(db.Licenses, rec)
		return true, nil
	})
	if err != nil {
		s.log.Error("failed to persist license", "error", err)
		return IssueResult{}, fmt.Errorf("persist license: %w", err)
	}

	result := IssueResult{Key: rec.Key, Record: rec}
	log := s.log.With("key", MaskKey(rec.Key))

	path, err := s.exporter.Export(ctx, rec, s.now())
	if err != nil {
		log.Warn("license stored without receipt, reconcile manually", "error", err)
		return result, &PartialIssueError{Key: rec.Key, Step: StepExport, Err: err}
	}
	result.ExportPath = path

	entry := AuditEntry{
		TS:     s.now(),
		Action: ActionGenerate,
		Key:    rec.Key,
		Name:   rec.Name,
		Email:  rec.Email,
		Notes:  rec.Notes,
		File:   path,
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		log.Warn("license stored without audit entry, reconcile manually", "error", err)
		return result, &PartialIssueError{Key: rec.Key, Step: StepAudit, Err: err}
	}

	log.Info("license issued")
	return result, nil
}

func (s *Service) uniqueKey(db *Database) (string, error) {
	for i := 0; i < keyAttempts; i++ {
		key, err := s.keys()
		if err != nil {
			return "", fmt.Errorf("generate key: %w", err)
		}
		if !db.Has(key) {
			return key, nil
		}
		s.log.Warn("license key collision, retrying", "attempt", i+1)
	}
	return "", ErrKeySpace
}

func (s *Service) Get(ctx context.Context, key string) (*Record, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrNotFound
	}

	db, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := db.index(key)
	if i < 0 {
		return nil, ErrNotFound
	}
	rec := db.Licenses[i]
	return &rec, nil
}

func (s *Service) List(ctx context.Context, includeRevoked bool) ([]Record, error) {
	db, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(db.Licenses))
	for _, rec := range db.Licenses {
		if rec.Revoked && !includeRevoked {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Revoke reports whether the license changed state. Unknown and already
// revoked keys are left untouched and yield false.
func (s *Service) Revoke(ctx context.Context, key, reason string) (bool, error) {
	key = NormalizeKey(key)
	reason = strings.TrimSpace(reason)
	if key == "" {
		return false, nil
	}

	at := s.now()
	var changed bool
	err := s.repo.Update(ctx, func(db *Database) (bool, error) {
		i := db.index(key)
		if i < 0 || db.Licenses[i].Revoked {
			return false, nil
		}
		db.Licenses[i].Revoked = true
		db.Licenses[i].RevokedAt = &at
		db.Licenses[i].RevokedReason = reason
		changed = true
		return true, nil
	})
	if err != nil {
		s.log.Error("failed to revoke license", "key", MaskKey(key), "error", err)
		return false, fmt.Errorf("revoke license: %w", err)
	}
	if !changed {
		return false, nil
	}

	entry := AuditEntry{TS: at, Action: ActionRevoke, Key: key, Reason: reason}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.log.Warn("license revoked without audit entry", "key", MaskKey(key), "error", err)
		return true, fmt.Errorf("%w: %w", ErrAudit, err)
	}

	s.log.Info("license revoked", "key", MaskKey(key))
	return true, nil
}

// Validate never exposes storage details in its message.
func (s *Service) Validate(ctx context.Context, key string) (bool, string) {
	rec, err := s.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, MsgNotFound
	case err != nil:
		s.log.Error("cannot validate license", "key", MaskKey(key), "error", err)
		return false, MsgUnreadable
	case rec.Revoked:
		return false, RevokedMessage(rec.RevokedReason)
	}
	return true, MsgValid
}

// Export rewrites the receipt for an existing license.
func (s *Service) Export(ctx context.Context, key string) (string, error) {
	rec, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	path, err := s.exporter.Export(ctx, *rec, s.now())
	if err != nil {
		return "", fmt.Errorf("export license: %w", err)
	}
	return path, nil
}

func RevokedMessage(reason string) string {
	if reason == "" {
		return MsgRevoked
	}
	return MsgRevoked + ": " + reason
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrInvalidInput.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "email":
		return "email is not well formed"
	case "max":
		return fmt.Sprintf("%s is longer than %s characters", strings.ToLower(fe.Field()), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
}
