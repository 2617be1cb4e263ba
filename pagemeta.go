// Package pagemeta extracts link-preview metadata (title, description,
// canonical URL, icon, image, type, keywords, provider) from parsed HTML
// documents using declarative, prioritized rule sets.
//
// This package contains domain types, interfaces and the rule engine
// following Ben Johnson's Standard Package Layout. Implementations of the
// document, fetching and storage interfaces live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package pagemeta
