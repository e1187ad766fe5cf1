package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"licensekeeper/internal/domain/license"
)

// AuditLog appends one JSON object per line. Entries are never rewritten.
type AuditLog struct {
	path string
	log  *slog.Logger
}

func NewAuditLog(layout Layout, log *slog.Logger) *AuditLog {
	return &AuditLog{
		path: layout.HistoryPath(),
		log:  log.With("component", "audit_log"),
	}
}

func (a *AuditLog) Append(ctx context.Context, entry license.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	line = append(line, '\n')

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, privatePerm)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("append audit entry: %w", err)
	}
	return f.Close()
}

// Entries reads the whole history; malformed lines are skipped.
func (a *AuditLog) Entries(ctx context.Context) ([]license.AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return []license.AuditEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	entries := []license.AuditEntry{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e license.AuditEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			a.log.Warn("skipping malformed audit line", "line", n, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan audit log: %w", err)
	}
	return entries, nil
}
