package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/app/client/crypto"
)

const (
	Iterations   = 200_000
	saltLength   = 16
	digestLength = 32

	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

type Servicer interface {
	IsConfigured(ctx context.Context) bool
	SetPassword(ctx context.Context, candidate string) error
	Verify(ctx context.Context, candidate string) bool
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// Verifier guards the administrative surface with a master password.
type Verifier struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewVerifier(repo Repository, log *slog.Logger) *Verifier {
	return &Verifier{
		repo: repo,
		log:  log.With("component", "admin_verifier"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (v *Verifier) IsConfigured(ctx context.Context) bool {
	ok, err := v.repo.Exists(ctx)
	if err != nil {
		v.log.Warn("cannot stat verifier record", "error", err)
		return false
	}
	return ok
}

// SetPassword overwrites any existing verifier unconditionally.
func (v *Verifier) SetPassword(ctx context.Context, candidate string) error {
	if candidate == "" {
		return fmt.Errorf("%w: empty password", ErrInvalidInput)
	}

	salt, err := crypto.GenerateRandomBytes(saltLength)
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	digest := derive(KDFPBKDF2SHA256, []byte(candidate), salt, Iterations)
	defer crypto.ClearMemory(digest)

	rec := Record{
		KDF:        KDFPBKDF2SHA256,
		Iterations: Iterations,
		SaltB64:    base64.StdEncoding.EncodeToString(salt),
		HashB64:    base64.StdEncoding.EncodeToString(digest),
		CreatedAt:  v.now(),
	}

	if err := v.repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save verifier: %w", err)
	}

	v.log.Info("master password set", "kdf", rec.KDF, "iterations", rec.Iterations)
	return nil
}

// Verify fails closed: any read, decode or kdf problem means false.
func (v *Verifier) Verify(ctx context.Context, candidate string) bool {
	rec, err := v.repo.Load(ctx)
	if err != nil {
		v.log.Debug("verifier unavailable", "error", err)
		return false
	}

	ok, err := check(rec, candidate)
	if err != nil {
		v.log.Warn("verifier record unusable", "kdf", rec.KDF, "error", err)
		return false
	}
	return ok
}

func (v *Verifier) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if !v.IsConfigured(ctx) {
		return ErrNotConfigured
	}
	if !v.Verify(ctx, oldPassword) {
		return ErrInvalidAuth
	}
	return v.SetPassword(ctx, newPassword)
}

func check(rec Record, candidate string) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(rec.SaltB64)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	expected, err := base64.StdEncoding.DecodeString(rec.HashB64)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}
	if len(salt) == 0 || len(expected) != digestLength || rec.Iterations <= 0 {
		return false, fmt.Errorf("malformed verifier record")
	}

	var digest []byte
	switch rec.KDF {
	case KDFPBKDF2SHA256, KDFArgon2id:
		digest = derive(rec.KDF, []byte(candidate), salt, rec.Iterations)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupported, rec.KDF)
	}
	defer crypto.ClearMemory(digest)

	return subtle.ConstantTimeCompare(digest, expected) == 1, nil
}

func derive(kdf string, password, salt []byte, iterations int) []byte {
	if kdf == KDFArgon2id {
		return argon2.IDKey(password, salt, uint32(iterations), argon2Memory, argon2Threads, digestLength)
	}
	return pbkdf2.Key(password, salt, iterations, digestLength, sha256.New)
}
