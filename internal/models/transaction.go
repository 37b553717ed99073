package models

import "github.com/shopspring/decimal"

// TotalLabel is the item name of the synthetic row closing every statement.
const TotalLabel = "TOTAL"

// Columns is the fixed column order of every rendered statement.
var Columns = []string{"item_name", "usage_date", "payment_date", "amount", "payment_method"}

// Entry represents a single settlement line of a statement.
type Entry struct {
	ItemName  string          `json:"itemName"`
	UsageDate string          `json:"usageDate"` // display text, not parsed
	Amount    decimal.Decimal `json:"amount"`    // negative for refunds
}

// Header holds document-level metadata. Empty fields mean the value was absent.
type Header struct {
	PaymentDate   string `json:"paymentDate,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// Statement is everything extracted from one statement page.
type Statement struct {
	Header  Header
	Entries []Entry
}

// Row is one flattened output line.
type Row struct {
	ItemName      string
	UsageDate     string
	PaymentDate   string
	Amount        decimal.Decimal
	PaymentMethod string
}

// Total returns the exact sum of all entry amounts.
func (s *Statement) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Rows projects the statement into output rows: one per entry in document
// order, followed by the TOTAL row.
func (s *Statement) Rows() []Row {
	rows := make([]Row, 0, len(s.Entries)+1)
	for _, e := range s.Entries {
		rows = append(rows, Row{
			ItemName:      e.ItemName,
			UsageDate:     e.UsageDate,
			PaymentDate:   s.Header.PaymentDate,
			Amount:        e.Amount,
			PaymentMethod: s.Header.PaymentMethod,
		})
	}
	return append(rows, Row{
		ItemName:      TotalLabel,
		PaymentDate:   s.Header.PaymentDate,
		Amount:        s.Total(),
		PaymentMethod: s.Header.PaymentMethod,
	})
}
