package pagemeta

import (
	"fmt"
	"slices"
)

// Context is shared by every rule set evaluated during a single GetMetadata
// call. It is read-only.
type Context struct {
	// URL is the page URL supplied by the caller. May be empty.
	URL string

	// MakeURLAbsolute resolves ref against base, returning ref unchanged
	// when it is already absolute.
	MakeURLAbsolute func(base, ref string) string

	// ParseURL returns the hostname component of a URL.
	ParseURL func(url string) string
}

// Extractor reads a raw value from a matched element.
// A nil value means the element offers no candidate.
type Extractor func(el Element) (any, error)

// Processor transforms a value. Processors run in declared order, each
// receiving the previous stage's output.
type Processor func(v any, c *Context) (any, error)

// Scorer ranks a processed candidate. The element it was extracted from is
// passed along so scorers can read sibling attributes.
type Scorer func(el Element, v any) float64

// RuleEntry is one syntactic way to locate a field's raw value.
type RuleEntry struct {
	Selector string
	Extract  Extractor
}

// RuleSet holds the ordered rules, processors and optional scorer for one
// metadata field. The first rule yielding a non-empty value wins; later
// rules are not consulted.
type RuleSet struct {
	Name       string
	Rules      []RuleEntry
	Processors []Processor
	Scorer     Scorer
}

func (*RuleSet) isNode() {}

// Build compiles the rule set into a Matcher.
func (rs *RuleSet) Build() (Matcher, error) {
	return BuildRuleset(rs.Name, rs.Rules, rs.Processors, rs.Scorer)
}

// Matcher evaluates a compiled rule set against a document.
// It returns nil when no rule produced a value.
type Matcher func(doc Document, c *Context) (any, error)

// BuildRuleset compiles rules, processors and an optional scorer into a
// Matcher. Returns EINVALID if rules is empty or an entry has no extractor.
func BuildRuleset(name string, rules []RuleEntry, processors []Processor, scorer Scorer) (Matcher, error) {
	if len(rules) == 0 {
		return nil, Errorf(EINVALID, "rule set %q has no rules", name)
	}
	for i, rule := range rules {
		if rule.Extract == nil {
			return nil, Errorf(EINVALID, "rule set %q: rule %d has no extractor", name, i)
		}
	}

	rules = slices.Clone(rules)
	processors = slices.Clone(processors)

	return func(doc Document, c *Context) (any, error) {
		for i, rule := range rules {
			elements, err := doc.Query(rule.Selector)
			if err != nil {
				return nil, fmt.Errorf("rule set %q: rule %d: %w", name, i, err)
			}
			if len(elements) == 0 {
				continue
			}

			var v any
			if scorer == nil {
				v, err = firstCandidate(elements, rule.Extract, processors, c)
			} else {
				v, err = bestCandidate(elements, rule.Extract, processors, scorer, c)
			}
			if err != nil {
				return nil, fmt.Errorf("rule set %q: rule %d: %w", name, i, err)
			}
			if !isEmpty(v) {
				return v, nil
			}
		}
		return nil, nil
	}, nil
}

// firstCandidate returns the first element's processed value that is not empty.
func firstCandidate(elements []Element, extract Extractor, processors []Processor, c *Context) (any, error) {
	for _, el := range elements {
		v, err := candidate(el, extract, processors, c)
		if err != nil {
			return nil, err
		}
		if !isEmpty(v) {
			return v, nil
		}
	}
	return nil, nil
}

// bestCandidate returns the highest scoring non-empty processed value.
// Ties go to the earliest element in document order. Empty candidates are
// skipped before scoring, so an empty top scorer cannot hide a non-empty
// match of the same rule.
func bestCandidate(elements []Element, extract Extractor, processors []Processor, scorer Scorer, c *Context) (any, error) {
	var best any
	var bestScore float64
	found := false

	for _, el := range elements {
		v, err := candidate(el, extract, processors, c)
		if err != nil {
			return nil, err
		}
		if isEmpty(v) {
			continue
		}
		score := scorer(el, v)
		if !found || score > bestScore {
			best, bestScore, found = v, score, true
		}
	}
	return best, nil
}

// candidate extracts a raw value from el and runs it through the processor chain.
func candidate(el Element, extract Extractor, processors []Processor, c *Context) (any, error) {
	v, err := extract(el)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	for _, process := range processors {
		if v, err = process(v, c); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// isEmpty reports whether v counts as "no value".
func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case Metadata:
		return v == nil
	}
	return false
}
