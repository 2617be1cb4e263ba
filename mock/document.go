package mock

import "github.com/fwojciec/pagemeta"

var _ pagemeta.Document = (*Document)(nil)

// Document is a mock implementation of pagemeta.Document.
type Document struct {
	QueryFn func(selector string) ([]pagemeta.Element, error)
}

func (d *Document) Query(selector string) ([]pagemeta.Element, error) {
	return d.QueryFn(selector)
}

var _ pagemeta.Element = (*Element)(nil)

// Element is a mock implementation of pagemeta.Element.
type Element struct {
	AttrFn func(name string) (string, bool)
	TextFn func() string
}

func (e *Element) Attr(name string) (string, bool) {
	return e.AttrFn(name)
}

func (e *Element) Text() string {
	return e.TextFn()
}

// Attrs returns an Element whose attributes are read from attrs.
func Attrs(attrs map[string]string) *Element {
	return &Element{
		AttrFn: func(name string) (string, bool) {
			v, ok := attrs[name]
			return v, ok
		},
		TextFn: func() string { return "" },
	}
}

var _ pagemeta.Parser = (*Parser)(nil)

// Parser is a mock implementation of pagemeta.Parser.
type Parser struct {
	ParseFn func(html string) (pagemeta.Document, error)
}

func (p *Parser) Parse(html string) (pagemeta.Document, error) {
	return p.ParseFn(html)
}
