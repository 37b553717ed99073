package writer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

// ErrUnsupportedFormat is returned by New for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format names an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Writer serializes a statement.
type Writer interface {
	Write(out io.Writer, st *models.Statement) error
	WriteToFile(path string, st *models.Statement) error
}

// New returns the writer for the given format name.
func New(format string) (Writer, error) {
	switch Format(strings.ToLower(format)) {
	case FormatCSV, "":
		return &CSVWriter{}, nil
	case FormatXLSX:
		return &XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: csv, xlsx)", ErrUnsupportedFormat, format)
	}
}
