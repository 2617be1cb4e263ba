package pagemeta

import "strings"

// Attr extracts the named attribute. A missing attribute offers no candidate.
func Attr(name string) Extractor {
	return func(el Element) (any, error) {
		v, ok := el.Attr(name)
		if !ok {
			return nil, nil
		}
		return v, nil
	}
}

// RequireAttr extracts the named attribute and fails with EINVALID when an
// element matched by the rule does not carry it.
func RequireAttr(name string) Extractor {
	return func(el Element) (any, error) {
		v, ok := el.Attr(name)
		if !ok {
			return nil, Errorf(EINVALID, "matched element has no %q attribute", name)
		}
		return v, nil
	}
}

// Text extracts the element's text content.
func Text() Extractor {
	return func(el Element) (any, error) {
		return el.Text(), nil
	}
}

// Constant ignores the element and yields v. Combined with a selector that
// always matches it provides a default value as the last rule of a set.
func Constant(v string) Extractor {
	return func(Element) (any, error) {
		return v, nil
	}
}

// TrimSpace trims surrounding whitespace from strings and list items.
func TrimSpace(v any, _ *Context) (any, error) {
	return mapStrings(v, strings.TrimSpace)
}

// AbsoluteURL resolves strings and list items against the context URL.
// Empty strings stay empty and empty list items are dropped, so a blank
// attribute never resolves to the page URL itself.
func AbsoluteURL(v any, c *Context) (any, error) {
	resolve := func(s string) string {
		if s == "" {
			return ""
		}
		return c.MakeURLAbsolute(c.URL, s)
	}

	if list, ok := v.([]string); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item != "" {
				out = append(out, resolve(item))
			}
		}
		return out, nil
	}
	return mapStrings(v, resolve)
}

// SplitList splits a string on sep, trimming items and dropping empty ones.
func SplitList(sep string) Processor {
	return func(v any, _ *Context) (any, error) {
		switch v := v.(type) {
		case nil:
			return nil, nil
		case []string:
			return v, nil
		case string:
			var items []string
			for _, item := range strings.Split(v, sep) {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			return items, nil
		}
		return nil, Errorf(EINVALID, "cannot split value of type %T", v)
	}
}

// mapStrings applies fn to a string or to every item of a string list.
func mapStrings(v any, fn func(string) string) (any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return fn(v), nil
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = fn(s)
		}
		return out, nil
	}
	return nil, Errorf(EINVALID, "expected string value, got %T", v)
}
