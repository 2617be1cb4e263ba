// Package yaml loads pagemeta rule trees from YAML documents.
//
// A rule tree file is a mapping of field names. A field whose mapping has a
// "rules" sequence is a rule set; any other mapping is a group of fields:
//
//	title:
//	  rules:
//	    - selector: 'meta[property="og:title"]'
//	      attr: content
//	    - selector: title
//	      text: true
//	  processors: [trim]
//	media:
//	  icon:
//	    rules:
//	      - selector: 'link[rel="icon"]'
//	        attr: href
//	      - selector: html
//	        value: favicon.ico
//	    processors: [trim, absolute_url]
//	    scorer: icon_size
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/pagemeta"
	"gopkg.in/yaml.v3"
)

// Built-in processor and scorer names.
const (
	ProcessorTrim        = "trim"
	ProcessorAbsoluteURL = "absolute_url"
	ProcessorSplit       = "split"
	ScorerIconSize       = "icon_size"
)

// Registry maps the processor and scorer names used in rule files onto
// engine functions.
type Registry struct {
	processors map[string]pagemeta.Processor
	scorers    map[string]pagemeta.Scorer
}

// NewRegistry returns a Registry holding the built-in processors and scorers.
// "split" splits on commas; "split:<sep>" splits on sep.
func NewRegistry() *Registry {
	return &Registry{
		processors: map[string]pagemeta.Processor{
			ProcessorTrim:        pagemeta.TrimSpace,
			ProcessorAbsoluteURL: pagemeta.AbsoluteURL,
			ProcessorSplit:       pagemeta.SplitList(","),
		},
		scorers: map[string]pagemeta.Scorer{
			ScorerIconSize: pagemeta.IconSizeScorer,
		},
	}
}

// RegisterProcessor adds or replaces a named processor.
func (r *Registry) RegisterProcessor(name string, p pagemeta.Processor) {
	r.processors[name] = p
}

// RegisterScorer adds or replaces a named scorer.
func (r *Registry) RegisterScorer(name string, s pagemeta.Scorer) {
	r.scorers[name] = s
}

// Decode reads a rule tree using the built-in registry.
func Decode(rd io.Reader) (pagemeta.Group, error) {
	return NewRegistry().Decode(rd)
}

// LoadFile reads a rule tree from a file using the built-in registry.
func LoadFile(path string) (pagemeta.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a rule tree. Unknown processor or scorer names, rule sets
// without rules and rules without exactly one extractor return EINVALID.
func (r *Registry) Decode(rd io.Reader) (pagemeta.Group, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "rules document is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "failed to parse rules: %v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	return r.decodeGroup(root, "")
}

type ruleSpec struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr"`
	Text     bool   `yaml:"text"`
	Value    string `yaml:"value"`
	Required bool   `yaml:"required"`
}

type ruleSetSpec struct {
	Rules      []ruleSpec `yaml:"rules"`
	Processors []string   `yaml:"processors"`
	Scorer     string     `yaml:"scorer"`
}

func (r *Registry) decodeGroup(node *yaml.Node, path string) (pagemeta.Group, error) {
	if node.Kind != yaml.MappingNode {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: expected a mapping of fields (line %d)", displayPath(path), node.Line)
	}

	group := make(pagemeta.Group, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		fieldPath := joinPath(path, key)

		if isRuleSet(value) {
			rs, err := r.decodeRuleSet(value, fieldPath)
			if err != nil {
				return nil, err
			}
			group[key] = rs
			continue
		}

		sub, err := r.decodeGroup(value, fieldPath)
		if err != nil {
			return nil, err
		}
		group[key] = sub
	}
	return group, nil
}

func (r *Registry) decodeRuleSet(node *yaml.Node, path string) (*pagemeta.RuleSet, error) {
	var spec ruleSetSpec
	if err := node.Decode(&spec); err != nil {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: %v", path, err)
	}
	if len(spec.Rules) == 0 {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: rule set has no rules", path)
	}

	rs := &pagemeta.RuleSet{Name: path}
	for i, rule := range spec.Rules {
		extract, err := extractor(rule)
		if err != nil {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: rule %d: %s", path, i, pagemeta.ErrorMessage(err))
		}
		rs.Rules = append(rs.Rules, pagemeta.RuleEntry{Selector: rule.Selector, Extract: extract})
	}

	for _, name := range spec.Processors {
		p, err := r.processor(name)
		if err != nil {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: %s", path, pagemeta.ErrorMessage(err))
		}
		rs.Processors = append(rs.Processors, p)
	}

	if spec.Scorer != "" {
		s, ok := r.scorers[spec.Scorer]
		if !ok {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "%s: unknown scorer %q", path, spec.Scorer)
		}
		rs.Scorer = s
	}

	return rs, nil
}

func (r *Registry) processor(name string) (pagemeta.Processor, error) {
	if sep, ok := strings.CutPrefix(name, ProcessorSplit+":"); ok {
		if sep == "" {
			return nil, pagemeta.Errorf(pagemeta.EINVALID, "split separator is empty")
		}
		return pagemeta.SplitList(sep), nil
	}
	p, ok := r.processors[name]
	if !ok {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "unknown processor %q", name)
	}
	return p, nil
}

// extractor resolves the single extraction strategy declared by a rule.
func extractor(rule ruleSpec) (pagemeta.Extractor, error) {
	if rule.Selector == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "selector is required")
	}

	var declared int
	var extract pagemeta.Extractor
	if rule.Attr != "" {
		declared++
		extract = pagemeta.Attr(rule.Attr)
		if rule.Required {
			extract = pagemeta.RequireAttr(rule.Attr)
		}
	}
	if rule.Text {
		declared++
		extract = pagemeta.Text()
	}
	if rule.Value != "" {
		declared++
		extract = pagemeta.Constant(rule.Value)
	}

	if declared != 1 {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "exactly one of attr, text or value is required")
	}
	return extract, nil
}

// isRuleSet reports whether node is a mapping with a "rules" sequence.
func isRuleSet(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "rules" && node.Content[i+1].Kind == yaml.SequenceNode {
			return true
		}
	}
	return false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func displayPath(path string) string {
	if path == "" {
		return "rules"
	}
	return path
}
