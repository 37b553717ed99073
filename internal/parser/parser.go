package parser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

// Default labels and structural markers of a saved PayPay statement page.
const (
	DefaultPaymentDateLabel   = "支払い日"
	DefaultPaymentMethodLabel = "利用カード"
	DefaultEntryMarker        = "_ListSettlement__list_"
	DefaultItemNameMarker     = "__labelMain"
	DefaultUsageDateMarker    = "__date"
	DefaultAmountMarker       = "__summaryText"
)

// Parser defines the interface for statement page parsers.
type Parser interface {
	// Parse extracts structured statement data from a parsed HTML document.
	// Missing fields degrade to empty values; parsing never fails.
	Parse(doc *goquery.Document) *models.Statement
	// Name returns the human-readable statement source.
	Name() string
}

// Options configures which labels and class markers the parser looks for.
type Options struct {
	PaymentDateLabel   string
	PaymentMethodLabel string

	EntryMarker     Matcher
	ItemNameMarker  Matcher
	UsageDateMarker Matcher
	AmountMarker    Matcher
}

// DefaultOptions returns the options matching the current PayPay page layout.
func DefaultOptions() Options {
	return Options{
		PaymentDateLabel:   DefaultPaymentDateLabel,
		PaymentMethodLabel: DefaultPaymentMethodLabel,
		EntryMarker:        Contains(DefaultEntryMarker),
		ItemNameMarker:     Contains(DefaultItemNameMarker),
		UsageDateMarker:    Contains(DefaultUsageDateMarker),
		AmountMarker:       Contains(DefaultAmountMarker),
	}
}

// New returns a PayPay parser. Zero-valued options fall back to the defaults.
func New(opts Options) Parser {
	def := DefaultOptions()
	if opts.PaymentDateLabel == "" {
		opts.PaymentDateLabel = def.PaymentDateLabel
	}
	if opts.PaymentMethodLabel == "" {
		opts.PaymentMethodLabel = def.PaymentMethodLabel
	}
	if opts.EntryMarker == nil {
		opts.EntryMarker = def.EntryMarker
	}
	if opts.ItemNameMarker == nil {
		opts.ItemNameMarker = def.ItemNameMarker
	}
	if opts.UsageDateMarker == nil {
		opts.UsageDateMarker = def.UsageDateMarker
	}
	if opts.AmountMarker == nil {
		opts.AmountMarker = def.AmountMarker
	}
	return &PayPayParser{opts: opts}
}
