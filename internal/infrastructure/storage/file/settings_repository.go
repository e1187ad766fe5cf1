package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/settings"
)

type SettingsRepository struct {
	path string
	log  *slog.Logger
}

func NewSettingsRepository(layout Layout, log *slog.Logger) *SettingsRepository {
	return &SettingsRepository{
		path: layout.SettingsPath(),
		log:  log.With("component", "settings_repository"),
	}
}

// Load overlays stored fields on top of the defaults.
func (r *SettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	if err := ctx.Err(); err != nil {
		return settings.Settings{}, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings.Defaults(), nil
	}
	if err != nil {
		r.log.Warn("settings unreadable, using defaults", "error", err)
		return settings.Defaults(), nil
	}

	s := settings.Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		r.log.Warn("settings corrupt, using defaults", "error", err)
		return settings.Defaults(), nil
	}
	return s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := atomicwriter.WriteFile(r.path, data, privatePerm); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
