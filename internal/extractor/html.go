package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned for input encodings that cannot be decoded.
var ErrUnsupportedEncoding = errors.New("unsupported input encoding")

// Load reads the HTML file at path and parses it into a document tree.
// The whole file is read into memory before parsing.
func Load(path, enc string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	return Parse(f, enc)
}

// Parse decodes r using the named encoding (empty means UTF-8) and parses it
// as HTML.
func Parse(r io.Reader, enc string) (*goquery.Document, error) {
	e, err := lookupEncoding(enc)
	if err != nil {
		return nil, err
	}
	if e != nil {
		r = transform.NewReader(r, e.NewDecoder())
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// lookupEncoding maps an encoding name to its decoder. A nil encoding means
// the input is already UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "", "utf_8", "utf8":
		return nil, nil
	case "shift_jis", "sjis", "shiftjis", "windows_31j", "cp932":
		return japanese.ShiftJIS, nil
	case "euc_jp", "eucjp":
		return japanese.EUCJP, nil
	case "iso_2022_jp":
		return japanese.ISO2022JP, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}
