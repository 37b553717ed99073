package writer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

func TestCSVWriter_Render(t *testing.T) {
	st := &models.Statement{
		Header: models.Header{PaymentDate: "2024年1月10日"},
		Entries: []models.Entry{
			{ItemName: "コンビニ決済", UsageDate: "12/01", Amount: decimal.NewFromInt(1200)},
		},
	}

	want := "item_name,usage_date,payment_date,amount,payment_method\n" +
		`"コンビニ決済","12/01","2024年1月10日",1200,` + "\n" +
		`TOTAL,,"2024年1月10日",1200,`

	w := &CSVWriter{}
	if got := w.Render(st); got != want {
		t.Errorf("Render mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVWriter_RenderEmpty(t *testing.T) {
	w := &CSVWriter{}
	got := w.Render(&models.Statement{})

	want := "item_name,usage_date,payment_date,amount,payment_method\nTOTAL,,,0,"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCSVWriter_RenderOrderAndTotal(t *testing.T) {
	st := &models.Statement{
		Header: models.Header{PaymentDate: "1/10", PaymentMethod: "visa"},
		Entries: []models.Entry{
			{ItemName: "b", UsageDate: "12/02", Amount: decimal.RequireFromString("0.1")},
			{ItemName: "a", UsageDate: "12/01", Amount: decimal.RequireFromString("0.2")},
			{ItemName: "refund", UsageDate: "12/03", Amount: decimal.RequireFromString("-1.5")},
		},
	}

	lines := strings.Split((&CSVWriter{}).Render(st), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines: got %d, want 5", len(lines))
	}
	if !strings.HasPrefix(lines[1], "b,") || !strings.HasPrefix(lines[2], "a,") {
		t.Errorf("entry order changed: %q, %q", lines[1], lines[2])
	}
	if lines[3] != `refund,"12/03","1/10",-1.5,visa` {
		t.Errorf("refund line: got %q", lines[3])
	}
	if lines[4] != `TOTAL,,"1/10",-1.2,visa` {
		t.Errorf("total line: got %q", lines[4])
	}
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale content that is longer than the output"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := &CSVWriter{}
	if err := w.WriteToFile(path, &models.Statement{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != w.Render(&models.Statement{}) {
		t.Errorf("file content: got %q", data)
	}
}

func TestCSVWriter_WriteToFileBadPath(t *testing.T) {
	w := &CSVWriter{}
	err := w.WriteToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), &models.Statement{})
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}

type failingWriter struct{}

func (failingWriter) Write(out io.Writer, _ *models.Statement) error {
	io.WriteString(out, "item_name,usage")
	return errors.New("disk full")
}

func (w failingWriter) WriteToFile(path string, st *models.Statement) error {
	return writeFile(path, w, st)
}

func TestWriteFile_RemovesPartialOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (failingWriter{}).WriteToFile(path, &models.Statement{}); err == nil {
		t.Fatal("expected write error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial output left at %s (stat err: %v)", path, err)
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, &models.Statement{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasSuffix(buf.String(), "\n") {
		t.Error("output must not end with a newline")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1200", "1200"},
		{"1200.50", "1200.5"},
		{"-300", "-300"},
		{"0", "0"},
		{"1234567.89", "1234567.89"},
	}

	for _, tt := range tests {
		got := formatAmount(decimal.RequireFromString(tt.input))
		if got != tt.expected {
			t.Errorf("formatAmount(%s): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"TOTAL", "TOTAL"},
		{"item_name", "item_name"},
		{"visa", "visa"},
		{"a b", `"a b"`},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"tab\there", "\"tab\there\""},
		{"12/01", `"12/01"`},
		{"コンビニ決済", `"コンビニ決済"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := formatField(tt.input); got != tt.expected {
				t.Errorf("formatField(%q): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatField_RoundTrip(t *testing.T) {
	inputs := []string{
		"a b",
		"a,b",
		`"quoted"`,
		`mixed "x", y`,
		"multi\nline",
		"全角　スペース",
		`""`,
	}

	for _, in := range inputs {
		r := csv.NewReader(strings.NewReader(formatField(in)))
		rec, err := r.Read()
		if err != nil {
			t.Errorf("read back %q: %v", in, err)
			continue
		}
		if len(rec) != 1 || rec[0] != in {
			t.Errorf("round trip of %q: got %q", in, rec)
		}
	}
}
