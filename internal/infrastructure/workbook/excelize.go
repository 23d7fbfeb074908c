package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/ports"
)

// Writer implements ports.WorkbookWriter with excelize. It writes plain rows
// only; cell styling is out of scope for the core.
type Writer struct{}

var _ ports.WorkbookWriter = (*Writer)(nil)

// New returns a stateless writer.
func New() *Writer {
	return &Writer{}
}

// Write renders the sheets, in order, into an xlsx file.
func (w *Writer) Write(sheets []domain.Sheet) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := file.SetSheetName(file.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %s: %w", sheet.Name, err)
			}
		} else {
			if _, err := file.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet.Name, err)
			}
		}

		for rowIdx, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet.Name, rowIdx+1, err)
			}
			if err := file.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet.Name, rowIdx+1, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
