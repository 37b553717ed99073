package writer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

// CSVWriter renders statements as comma-separated text.
//
// Rows are joined by a single "\n" with no trailing newline. Text fields are
// emitted bare only when they are plain ASCII tokens; anything else (spaces,
// commas, quotes, Japanese text, dates like 12/01) is quoted.
type CSVWriter struct{}

// WriteToFile writes the statement to a CSV file at the given path, replacing
// any existing file.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	return writeFile(path, w, st)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	if _, err := io.WriteString(out, w.Render(st)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// Render returns the header row, one row per entry and the TOTAL row.
func (w *CSVWriter) Render(st *models.Statement) string {
	lines := make([]string, 0, len(st.Entries)+2)
	lines = append(lines, joinFields(models.Columns))

	for _, r := range st.Rows() {
		lines = append(lines, joinFields([]string{
			formatField(r.ItemName),
			formatField(r.UsageDate),
			formatField(r.PaymentDate),
			formatAmount(r.Amount),
			formatField(r.PaymentMethod),
		}))
	}
	return strings.Join(lines, "\n")
}

func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

// formatAmount renders plain base-10 text: no grouping, sign and fraction kept.
func formatAmount(d decimal.Decimal) string {
	return d.String()
}

// formatField quotes s unless it is a plain token, doubling inner quotes.
// Japanese item names and slash dates such as 12/01 are therefore quoted
// even without a comma or whitespace in them; header names and TOTAL stay bare.
func formatField(s string) string {
	if !needsQuote(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func needsQuote(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == '-', r == '+':
		default:
			return true
		}
	}
	return false
}

func writeFile(path string, w Writer, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	if err := w.Write(f, st); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close output file %q: %w", path, err)
	}
	return nil
}
