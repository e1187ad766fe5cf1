package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"licensekeeper/internal/domain/license"
)

const (
	LicensesSheet = "Licenses"
	HistorySheet  = "History"

	timeLayout = time.RFC3339
)

var (
	licenseHeader = []any{"Key", "Name", "Email", "Notes", "Issued at", "Status", "Revoked at", "Reason"}
	historyHeader = []any{"Timestamp", "Action", "Key", "Name", "Email", "Reason", "File"}
)

// WriteXLSX saves licenses and, when given, the audit history as a workbook.
func WriteXLSX(path string, records []license.Record, history []license.AuditEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LicensesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeLicenses(f, records); err != nil {
		return err
	}

	if history != nil {
		if _, err := f.NewSheet(HistorySheet); err != nil {
			return fmt.Errorf("create history sheet: %w", err)
		}
		if err := writeHistory(f, history); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeLicenses(f *excelize.File, records []license.Record) error {
	if err := f.SetSheetRow(LicensesSheet, "A1", &licenseHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		status, revokedAt := "active", ""
		if rec.Revoked {
			status = "revoked"
			if rec.RevokedAt != nil {
				revokedAt = rec.RevokedAt.Format(timeLayout)
			}
		}
		row := []any{
			rec.Key, rec.Name, rec.Email, rec.Notes,
			rec.IssuedAt.Format(timeLayout), status, revokedAt, rec.RevokedReason,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(LicensesSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeHistory(f *excelize.File, history []license.AuditEntry) error {
	if err := f.SetSheetRow(HistorySheet, "A1", &historyHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range history {
		row := []any{e.TS.Format(timeLayout), e.Action, e.Key, e.Name, e.Email, e.Reason, e.File}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return nil
}
