package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"

	"licensekeeper/internal/domain/admin"
)

// AdminRepository keeps the master password verifier in admin_auth.json.
type AdminRepository struct {
	path string
}

func NewAdminRepository(layout Layout) *AdminRepository {
	return &AdminRepository{path: layout.AdminPath()}
}

func (r *AdminRepository) Exists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := os.Stat(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat admin record: %w", err)
	}
	return true, nil
}

func (r *AdminRepository) Load(ctx context.Context) (admin.Record, error) {
	if err := ctx.Err(); err != nil {
		return admin.Record{}, err
	}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return admin.Record{}, admin.ErrNotConfigured
	}
	if err != nil {
		return admin.Record{}, fmt.Errorf("read admin record: %w", err)
	}

	var rec admin.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return admin.Record{}, fmt.Errorf("parse admin record: %w", err)
	}
	return rec, nil
}

func (r *AdminRepository) Save(ctx context.Context, rec admin.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal admin record: %w", err)
	}
	if err := atomicwriter.WriteFile(r.path, data, privatePerm); err != nil {
		return fmt.Errorf("write admin record: %w", err)
	}
	return nil
}
