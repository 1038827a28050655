package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/csvexport"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

const sheetName = "Rate Sheets"

// Write renders the rate sheet records as an XLSX workbook and writes it to
// w. Columns match the CSV export.
func Write(w io.Writer, records []domain.RateSheetRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]interface{}, len(csvexport.Columns))
	for i, col := range csvexport.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i := range records {
		row := csvexport.SheetToRow(&records[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
