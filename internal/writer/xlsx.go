package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

// SheetName is the worksheet holding the statement rows.
const SheetName = "Statement"

// XLSXWriter writes statements as a single-sheet Excel workbook. Amounts are
// stored as numeric cells so spreadsheet formulas work on them.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path, replacing any existing file.
func (w *XLSXWriter) WriteToFile(path string, st *models.Statement) error {
	return writeFile(path, w, st)
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, st *models.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Creator: "paypay-statement-converter",
		Title:   "PayPay statement",
	})

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := make([]interface{}, len(models.Columns))
	for i, c := range models.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for i, r := range st.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.ItemName,
			r.UsageDate,
			r.PaymentDate,
			r.Amount.InexactFloat64(),
			r.PaymentMethod,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write XLSX row %d: %w", i+1, err)
		}
	}

	// Bold header, roomy columns
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(models.Columns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 20); err != nil {
		return err
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}
