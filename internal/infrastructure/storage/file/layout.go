package file

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	databaseFile = "licenses_db.json.enc"
	lockFile     = "licenses_db.lock"
	historyFile  = "license_history.jsonl"
	adminFile    = "admin_auth.json"
	settingsFile = "settings.json"
	syncFile     = "sync_state.json"
	issuedDir    = "issued"

	dirPerm     = 0o700
	privatePerm = 0o600
)

// Layout resolves every on-disk artifact under one configuration directory.
type Layout struct {
	Dir string
}

func NewLayout(dir string) (Layout, error) {
	if dir == "" {
		return Layout{}, fmt.Errorf("config dir is empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return Layout{}, fmt.Errorf("create config dir: %w", err)
	}
	return Layout{Dir: dir}, nil
}

func (l Layout) DatabasePath() string  { return filepath.Join(l.Dir, databaseFile) }
func (l Layout) LockPath() string      { return filepath.Join(l.Dir, lockFile) }
func (l Layout) HistoryPath() string   { return filepath.Join(l.Dir, historyFile) }
func (l Layout) AdminPath() string     { return filepath.Join(l.Dir, adminFile) }
func (l Layout) SettingsPath() string  { return filepath.Join(l.Dir, settingsFile) }
func (l Layout) IssuedDir() string     { return filepath.Join(l.Dir, issuedDir) }
func (l Layout) SyncStatePath() string { return filepath.Join(l.Dir, syncFile) }
