package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/license"
)

// Sealer is the authenticated cipher protecting the database blob.
type Sealer interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// LicenseRepository stores the license database as one encrypted document.
type LicenseRepository struct {
	path     string
	lockPath string
	sealer   Sealer
	log      *slog.Logger
}

func NewLicenseRepository(layout Layout, sealer Sealer, log *slog.Logger) *LicenseRepository {
	return &LicenseRepository{
		path:     layout.DatabasePath(),
		lockPath: layout.LockPath(),
		sealer:   sealer,
		log:      log.With("component", "license_repository"),
	}
}

func (r *LicenseRepository) Load(ctx context.Context) (*license.Database, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock, err := acquireLock(r.lockPath, false)
	if err != nil {
		return nil, err
	}
	defer r.unlock(lock)

	return r.read()
}

func (r *LicenseRepository) Update(ctx context.Context, fn func(db *license.Database) (bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock, err := acquireLock(r.lockPath, true)
	if err != nil {
		return err
	}
	defer r.unlock(lock)

	db, err := r.read()
	if err != nil {
		return err
	}

	changed, err := fn(db)
	if err != nil || !changed {
		return err
	}

	return r.write(db)
}

func (r *LicenseRepository) read() (*license.Database, error) {
	blob, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return license.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read database: %w", err)
	}

	plain, err := r.sealer.Decrypt(blob)
	if err != nil {
		r.log.Error("database cannot be decrypted", "error", err)
		return nil, license.ErrDecryption
	}

	var db license.Database
	if err := json.Unmarshal(plain, &db); err != nil {
		r.log.Error("database is not valid json", "error", err)
		return nil, license.ErrDecryption
	}
	if db.Licenses == nil {
		db.Licenses = []license.Record{}
	}
	return &db, nil
}

func (r *LicenseRepository) write(db *license.Database) error {
	db.Version = license.DatabaseVersion

	plain, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("marshal database: %w", err)
	}
	blob, err := r.sealer.Encrypt(plain)
	if err != nil {
		return fmt.Errorf("encrypt database: %w", err)
	}
	if err := atomicwriter.WriteFile(r.path, blob, privatePerm); err != nil {
		return fmt.Errorf("write database: %w", err)
	}
	return nil
}

func (r *LicenseRepository) unlock(lock *fileLock) {
	if err := lock.release(); err != nil {
		r.log.Warn("failed to release database lock", "error", err)
	}
}
