// Package goquery implements pagemeta.Parser and pagemeta.Document on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/pagemeta"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ pagemeta.Parser   = (*Parser)(nil)
	_ pagemeta.Document = (*Document)(nil)
	_ pagemeta.Element  = (*Element)(nil)
)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html into a Document.
func (p *Parser) Parse(html string) (pagemeta.Document, error) {
	return NewDocument(html)
}

// Document wraps a goquery document. Queries never modify the tree.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses an HTML string.
func NewDocument(s string) (*Document, error) {
	return NewDocumentFromReader(strings.NewReader(s))
}

// NewDocumentFromReader parses HTML read from r. The caller is responsible
// for decoding r to UTF-8.
func NewDocumentFromReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// NewDocumentFromNode wraps an already parsed x/net/html tree.
func NewDocumentFromNode(root *html.Node) *Document {
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// Query returns the elements matching selector in document order.
// An invalid selector is reported as EINVALID instead of matching nothing.
func (d *Document) Query(selector string) ([]pagemeta.Element, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid selector %q: %v", selector, err)
	}

	matches := d.doc.FindMatcher(sel)
	elements := make([]pagemeta.Element, 0, matches.Length())
	matches.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements, nil
}

// Element is a single matched node.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// Text returns the text content of the element and its descendants.
func (e *Element) Text() string {
	return e.sel.Text()
}
