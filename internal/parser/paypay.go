package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/paypay-statement-converter/internal/models"
)

// PayPayParser handles saved PayPay statement pages.
type PayPayParser struct {
	opts Options
}

// Name returns the statement source name.
func (p *PayPayParser) Name() string {
	return "PayPay"
}

// Parse extracts the header metadata and settlement entries from doc.
func (p *PayPayParser) Parse(doc *goquery.Document) *models.Statement {
	date, _ := labelValue(doc.Selection, labelRule{label: p.opts.PaymentDateLabel})
	method, _ := labelValue(doc.Selection, labelRule{label: p.opts.PaymentMethodLabel, fallback: iconID})

	return &models.Statement{
		Header: models.Header{
			PaymentDate:   date,
			PaymentMethod: method,
		},
		Entries: p.entries(doc.Selection),
	}
}

// entries walks every <li> in document order and keeps the ones carrying
// the settlement marker.
func (p *PayPayParser) entries(root *goquery.Selection) []models.Entry {
	var entries []models.Entry

	root.Find("li").Each(func(_ int, li *goquery.Selection) {
		if !p.opts.EntryMarker.Match(li.AttrOr("class", "")) {
			return
		}

		itemName := normalizeText(firstMatch(li, p.opts.ItemNameMarker).Text())
		usageDate := normalizeText(firstMatch(li, p.opts.UsageDateMarker).Text())
		amount := parseAmount(normalizeText(firstMatch(li, p.opts.AmountMarker).Text()))

		// decorative list items carry neither a name nor an amount
		if itemName == "" && amount.IsZero() {
			return
		}

		entries = append(entries, models.Entry{
			ItemName:  itemName,
			UsageDate: usageDate,
			Amount:    amount,
		})
	})

	return entries
}

// firstMatch returns the first descendant of s whose class attribute
// satisfies m, or an empty selection.
func firstMatch(s *goquery.Selection, m Matcher) *goquery.Selection {
	return s.Find("[class]").FilterFunction(func(_ int, d *goquery.Selection) bool {
		return m.Match(d.AttrOr("class", ""))
	}).First()
}

// fallback selects what to return when a label's value element has no text.
type fallback int

const (
	textOnly fallback = iota
	iconID            // id of an <svg> embedded in the value element
)

type labelRule struct {
	label    string
	fallback fallback
}

// labelValue finds the first <dt> whose text contains rule.label and reads
// the <dd> immediately following it.
func labelValue(root *goquery.Selection, rule labelRule) (string, bool) {
	dt := root.Find("dt").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(normalizeText(s.Text()), rule.label)
	}).First()
	if dt.Length() == 0 {
		return "", false
	}

	dd := dt.NextFiltered("dd")
	if text := normalizeText(dd.Text()); text != "" {
		return text, true
	}

	if rule.fallback == iconID {
		if id, ok := dd.Find("svg").Attr("id"); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
