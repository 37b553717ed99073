package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestNew(t *testing.T) {
	p := New(Options{})
	if p.Name() != "PayPay" {
		t.Errorf("Name: got %q, want %q", p.Name(), "PayPay")
	}

	pp, ok := p.(*PayPayParser)
	if !ok {
		t.Fatalf("New returned %T, want *PayPayParser", p)
	}
	if pp.opts.PaymentDateLabel != DefaultPaymentDateLabel {
		t.Errorf("PaymentDateLabel: got %q", pp.opts.PaymentDateLabel)
	}
	if pp.opts.PaymentMethodLabel != DefaultPaymentMethodLabel {
		t.Errorf("PaymentMethodLabel: got %q", pp.opts.PaymentMethodLabel)
	}
	if pp.opts.EntryMarker == nil || pp.opts.ItemNameMarker == nil ||
		pp.opts.UsageDateMarker == nil || pp.opts.AmountMarker == nil {
		t.Error("expected default markers to be filled in")
	}
}

func TestNew_CustomMatcher(t *testing.T) {
	html := `<ul>
<li class="row"><span class="name">exact</span><span class="price">10</span></li>
<li class="row-other"><span class="name">skipped</span><span class="price">20</span></li>
</ul>`

	p := New(Options{
		EntryMarker:    MatcherFunc(func(v string) bool { return v == "row" }),
		ItemNameMarker: Contains("name"),
		AmountMarker:   Contains("price"),
	})

	st := p.Parse(mustDoc(t, html))
	if len(st.Entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(st.Entries))
	}
	if st.Entries[0].ItemName != "exact" {
		t.Errorf("ItemName: got %q, want %q", st.Entries[0].ItemName, "exact")
	}
}

func TestContains(t *testing.T) {
	m := Contains("__labelMain")
	tests := []struct {
		value    string
		expected bool
	}{
		{"ListSettlement__labelMain_a1b2", true},
		{"foo ListSettlement__labelMain", true},
		{"ListSettlement__labelSub", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.value); got != tt.expected {
			t.Errorf("Contains.Match(%q): got %v, want %v", tt.value, got, tt.expected)
		}
	}
}
