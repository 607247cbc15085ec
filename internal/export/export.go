// Package export writes the DB explorer table to an xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/five82/logdeck/internal/views"
)

// SheetName is the single worksheet in an exported workbook.
const SheetName = "Ingests"

// ErrNoRows is returned when the table has not loaded any data.
var ErrNoRows = errors.New("table has no loaded rows")

// Workbook renders panel into a new workbook. The caller owns the result
// and must Close it.
func Workbook(panel views.TablePanel) (*excelize.File, error) {
	if panel.Span != nil {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(panel.Columns))
	for i, c := range panel.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(max(len(panel.Columns), 1), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, row := range panel.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := make([]any, len(row.Cells))
		for j, v := range row.Cells {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}
	return f, nil
}

// Write renders panel as xlsx into w.
func Write(w io.Writer, panel views.TablePanel) error {
	f, err := Workbook(panel)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save writes panel to path, creating parent directories. A missing .xlsx
// extension is appended.
func Save(path string, panel views.TablePanel) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("export path is empty")
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		path += ".xlsx"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}
	if err := Write(out, panel); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}
	return path, nil
}
