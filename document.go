package pagemeta

// Document is a parsed HTML document the rule engine queries.
// The engine never constructs or mutates documents.
type Document interface {
	// Query returns every element matching the CSS selector, in document order.
	// Returns EINVALID if the selector cannot be compiled.
	Query(selector string) ([]Element, error)
}

// Element is a single node returned by a Document query.
type Element interface {
	// Attr returns the value of the named attribute and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the combined text content of the element and its descendants.
	Text() string
}

// Parser turns raw HTML into a Document.
type Parser interface {
	Parse(html string) (Document, error)
}
