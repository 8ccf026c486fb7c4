//go:build !noexcel

package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ExcelWriter emits a workbook with a Summary sheet plus one sheet per
// service holding that service's flattened resources.
type ExcelWriter struct {
	logger zerolog.Logger
	now    func() time.Time
}

// NewExcelWriter creates an Excel writer.
func NewExcelWriter(logger zerolog.Logger) *ExcelWriter {
	return &ExcelWriter{
		logger: logger,
		now:    time.Now,
	}
}

// Available reports whether this build can produce workbooks.
func (w *ExcelWriter) Available() bool { return true }

// Write produces the workbook in dir and returns its path.
func (w *ExcelWriter) Write(results map[string]any, dir string) (string, error) {
	w.logger.Info().Msg("generating Excel output")

	path := filepath.Join(dir, fmt.Sprintf("aws_inventory_%s.xlsx", w.now().Format(timestampFormat)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("failed to close workbook")
		}
	}()

	if err := w.writeSummarySheet(f, results); err != nil {
		return "", err
	}
	if err := w.writeServiceSheets(f, results); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("failed to write Excel file")
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Msg("Excel file generated")
	return path, nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, results map[string]any) error {
	const sheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	header := []any{"Inventory", "Region", "Service", "Resource Count", "Status"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}

	for i, row := range collectSummaryRows(results) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{row.Inventory, row.Region, row.Service, row.Count, row.Status}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+2, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeServiceSheets(f *excelize.File, results map[string]any) error {
	records := collectServiceRecords(results)

	for _, service := range sortedRecordKeys(records) {
		rows := records[service]
		if len(rows) == 0 {
			continue
		}
		if err := w.writeServiceSheet(f, service, rows); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) writeServiceSheet(f *excelize.File, service string, rows []Record) error {
	sheet := sanitizeSheetName(service)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	columns := columnOrder(rows)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header for %s: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(columns))
		for j, c := range columns {
			values[j] = row[c]
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %s: %w", i+2, sheet, err)
		}
	}
	return nil
}

func sortedRecordKeys(records map[string][]Record) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
