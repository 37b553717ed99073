package parser

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// normalizeText collapses every run of whitespace into a single ASCII space
// and trims both ends. Ideographic spaces and NBSPs count as whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// isSpace matches the Unicode White_Space set plus the BOM, minus NEL.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// parseAmount converts text such as "¥1,200", "－３００円" or "-12.50" into a
// decimal. Full-width characters are folded with NFKC, then everything except
// digits, '-' and '.' is dropped. Anything that does not survive as a valid
// number yields zero.
func parseAmount(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			return r
		}
		return -1
	}, norm.NFKC.String(s))
	if cleaned == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
