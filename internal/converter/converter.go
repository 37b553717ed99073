package converter

import (
	"context"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/insightdelivered/paypay-statement-converter/internal/config"
	"github.com/insightdelivered/paypay-statement-converter/internal/extractor"
	"github.com/insightdelivered/paypay-statement-converter/internal/logger"
	"github.com/insightdelivered/paypay-statement-converter/internal/models"
	"github.com/insightdelivered/paypay-statement-converter/internal/parser"
)

// Converter turns statement pages into statements.
type Converter struct {
	parser   parser.Parser
	encoding string
}

// New builds a converter from the extract and input sections of cfg.
func New(cfg *config.Config) *Converter {
	return &Converter{
		parser:   parser.New(cfg.ParserOptions()),
		encoding: cfg.Input.Encoding,
	}
}

// WithEncoding returns a copy of c decoding input with enc. Empty keeps the
// current encoding.
func (c *Converter) WithEncoding(enc string) *Converter {
	if enc == "" {
		return c
	}
	cp := *c
	cp.encoding = enc
	return &cp
}

// ConvertFile loads the HTML file at path and extracts its statement.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*models.Statement, error) {
	log := logger.FromContext(ctx)
	log.Debug().Str("path", path).Str("encoding", c.encoding).Msg("loading statement page")

	doc, err := extractor.Load(path, c.encoding)
	if err != nil {
		return nil, err
	}
	return c.parse(ctx, doc), nil
}

// Convert reads an HTML document from r and extracts its statement.
func (c *Converter) Convert(ctx context.Context, r io.Reader) (*models.Statement, error) {
	doc, err := extractor.Parse(r, c.encoding)
	if err != nil {
		return nil, err
	}
	return c.parse(ctx, doc), nil
}

func (c *Converter) parse(ctx context.Context, doc *goquery.Document) *models.Statement {
	log := logger.FromContext(ctx)

	st := c.parser.Parse(doc)

	log.Debug().
		Str("parser", c.parser.Name()).
		Int("entries", len(st.Entries)).
		Str("payment_date", st.Header.PaymentDate).
		Str("payment_method", st.Header.PaymentMethod).
		Str("total", st.Total().String()).
		Msg("statement extracted")

	if st.Header.PaymentDate == "" {
		log.Debug().Msg("payment date not found")
	}
	if st.Header.PaymentMethod == "" {
		log.Debug().Msg("payment method not found")
	}
	if len(st.Entries) == 0 {
		log.Warn().Msg("no settlement entries found; the page layout may not match the configured markers")
	}
	return st
}
