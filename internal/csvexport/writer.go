package csvexport

import (
	"encoding/csv"
	"io"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row (26 columns): job linkage, validity,
// and the per-kg/min-charge pair for each of the 11 rate categories.
var Columns = []string{
	"Job ID",
	"Valid Until",
	"Currency",
	"Stackable Per Kg",
	"Stackable Min Charge",
	"Non-Stackable Per Kg",
	"Non-Stackable Min Charge",
	"Hazardous Per Kg",
	"Hazardous Min Charge",
	"Mix Per Kg",
	"Mix Min Charge",
	"General Per Kg",
	"General Min Charge",
	"Primary Screening Per Kg",
	"Primary Screening Min Charge",
	"Secondary Screening Per Kg",
	"Secondary Screening Min Charge",
	"Fuel Surcharge Per Kg",
	"Fuel Surcharge Min Charge",
	"Freight Charge Per Kg",
	"Freight Charge Min Charge",
	"War Risk Surcharge Per Kg",
	"War Risk Surcharge Min Charge",
	"Handling Fee Per Kg",
	"Handling Fee Min Charge",
	"Created At",
}

// Writer wraps csv.Writer for exporting rate sheets as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteSheets converts a batch of rate sheet records to CSV rows and writes them.
func (w *Writer) WriteSheets(records []domain.RateSheetRecord) error {
	for i := range records {
		if err := w.csv.Write(SheetToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// SheetToRow converts a single rate sheet record to a row matching Columns.
// A payload that fails to unmarshal produces a row with only the job
// linkage filled in.
func SheetToRow(record *domain.RateSheetRecord) []string {
	row := []string{record.JobID.String(), record.ValidUntil, record.Currency}

	sheet, err := record.Sheet()
	if err != nil {
		sheet = &domain.RateSheet{}
	}
	buckets := []struct {
		nodes      map[string]domain.RateNode
		categories []string
	}{
		{sheet.Rates, domain.RateCategories},
		{sheet.ScreeningPrices, domain.ScreeningCategories},
		{sheet.FFWH, domain.FFWHCategories},
	}
	for _, b := range buckets {
		for _, cat := range b.categories {
			node := b.nodes[cat]
			row = append(row, node.PerKg, node.MinCharge)
		}
	}
	return append(row, record.CreatedAt.Format("2006-01-02 15:04:05"))
}
