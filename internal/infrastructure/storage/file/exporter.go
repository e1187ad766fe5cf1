package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moby/sys/atomicwriter"

	"licensekeeper/internal/domain/license"
)

const receiptTimeLayout = "20060102_150405"

// Exporter writes plaintext issuance receipts into the issued/ directory.
type Exporter struct {
	dir string
}

func NewExporter(layout Layout) *Exporter {
	return &Exporter{dir: layout.IssuedDir()}
}

func (e *Exporter) Export(ctx context.Context, rec license.Record, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create issued dir: %w", err)
	}

	data, err := json.MarshalIndent(license.NewReceipt(rec), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal receipt: %w", err)
	}

	path := filepath.Join(e.dir, ReceiptName(rec, at))
	if err := atomicwriter.WriteFile(path, data, privatePerm); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}
	return path, nil
}

// ReceiptName is LIC_<name>_<YYYYMMDD_HHMMSS>_<6 hex>.lic.json.
func ReceiptName(rec license.Record, at time.Time) string {
	return fmt.Sprintf("LIC_%s_%s_%s.lic.json",
		license.SanitizeFilename(rec.Name),
		at.Format(receiptTimeLayout),
		license.ShortKey(rec.Key),
	)
}
