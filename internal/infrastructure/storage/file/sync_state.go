package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"
)

// SyncStateRepository keeps mirror sync statistics between CLI runs.
type SyncStateRepository struct {
	path string
	log  *slog.Logger
}

func NewSyncStateRepository(layout Layout, log *slog.Logger) *SyncStateRepository {
	return &SyncStateRepository{
		path: layout.SyncStatePath(),
		log:  log.With("component", "sync_state_repository"),
	}
}

// Load leaves dst untouched when the file is missing or corrupt.
func (r *SyncStateRepository) Load(ctx context.Context, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read sync state: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.log.Warn("sync state corrupt, starting over", "error", err)
	}
	return nil
}

func (r *SyncStateRepository) Save(ctx context.Context, src any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sync state: %w", err)
	}
	if err := atomicwriter.WriteFile(r.path, data, privatePerm); err != nil {
		return fmt.Errorf("write sync state: %w", err)
	}
	return nil
}
