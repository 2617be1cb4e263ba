package pagemeta

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Field names with dispatcher fallbacks at the top level of a rule tree.
const (
	FieldProvider = "provider"
	FieldURL      = "url"
)

// Node is an element of a rule tree: either a *RuleSet leaf or a Group.
type Node interface {
	isNode()
}

// Group is a named collection of rule tree nodes. Groups nest to any depth.
type Group map[string]Node

func (Group) isNode() {}

// Metadata mirrors the shape of the rule tree it was produced from. Leaf
// values are string or []string; nested groups are Metadata. Fields that
// produced nothing are absent.
type Metadata map[string]any

// String returns the string value stored under key, or "".
func (m Metadata) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Strings returns the list value stored under key. A single string value is
// returned as a one-element list.
func (m Metadata) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// Group returns the nested metadata stored under key, or nil.
func (m Metadata) Group(key string) Metadata {
	g, _ := m[key].(Metadata)
	return g
}

// UnmarshalJSON decodes metadata back into the shapes GetMetadata produces:
// string lists become []string and objects become nested Metadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*m = nil
		return nil
	}
	*m = normalizeMap(raw)
	return nil
}

func normalizeMap(raw map[string]any) Metadata {
	m := make(Metadata, len(raw))
	for k, v := range raw {
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return normalizeMap(v)
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return v
			}
			list = append(list, s)
		}
		return list
	}
	return v
}

// GetMetadata evaluates every rule set in tree against doc and returns a
// result of the same shape. A nil tree uses DefaultRules. Nil URL functions
// default to ResolveURL and Hostname.
//
// When url is non-empty, a top-level provider leaf that matched nothing is
// derived from the URL's hostname, and a missing top-level url value is
// filled with url verbatim.
//
// Errors from any rule set abort the call; no partial result is returned.
func GetMetadata(doc Document, url string, tree Group, makeURLAbsolute func(base, ref string) string, parseURL func(url string) string) (Metadata, error) {
	if tree == nil {
		tree = DefaultRules()
	}
	if makeURLAbsolute == nil {
		makeURLAbsolute = ResolveURL
	}
	if parseURL == nil {
		parseURL = Hostname
	}

	c := &Context{
		URL:             url,
		MakeURLAbsolute: makeURLAbsolute,
		ParseURL:        parseURL,
	}

	metadata, err := resolveGroup(doc, c, tree)
	if err != nil {
		return nil, err
	}

	if url == "" {
		return metadata, nil
	}

	if _, ok := tree[FieldProvider].(*RuleSet); ok && isEmpty(metadata[FieldProvider]) {
		if provider := GetProvider(c.ParseURL(url)); provider != "" {
			metadata[FieldProvider] = provider
		}
	}

	if isEmpty(metadata[FieldURL]) {
		metadata[FieldURL] = url
	}

	return metadata, nil
}

// resolveGroup walks a group in sorted key order so that the first error
// reported for a tree is stable across calls.
func resolveGroup(doc Document, c *Context, group Group) (Metadata, error) {
	metadata := make(Metadata, len(group))

	for _, key := range slices.Sorted(maps.Keys(group)) {
		switch node := group[key].(type) {
		case nil:
			continue
		case *RuleSet:
			if node == nil {
				continue
			}
			match, err := node.Build()
			if err != nil {
				return nil, err
			}
			v, err := match(doc, c)
			if err != nil {
				return nil, err
			}
			if !isEmpty(v) {
				metadata[key] = v
			}
		case Group:
			sub, err := resolveGroup(doc, c, node)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", key, err)
			}
			metadata[key] = sub
		default:
			return nil, Errorf(EINVALID, "unsupported rule tree node %T at %q", node, key)
		}
	}

	return metadata, nil
}
