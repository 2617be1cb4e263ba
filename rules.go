package pagemeta

// Default catalog field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldIconURL     = "icon_url"
	FieldImageURL    = "image_url"
	FieldType        = "type"
	FieldKeywords    = "keywords"
	FieldLanguage    = "language"
)

// DefaultIcon is resolved against the page URL when a page declares no icon.
const DefaultIcon = "favicon.ico"

// DefaultRules returns the built-in rule tree for standard preview fields.
// Each call returns a fresh tree so callers may add, replace or regroup
// fields without affecting other callers.
func DefaultRules() Group {
	return Group{
		FieldTitle: &RuleSet{
			Name: FieldTitle,
			Rules: []RuleEntry{
				{Selector: `meta[property="og:title"]`, Extract: Attr("content")},
				{Selector: `meta[name="twitter:title"]`, Extract: Attr("content")},
				{Selector: `meta[property="twitter:title"]`, Extract: Attr("content")},
				{Selector: `meta[name="hdl"]`, Extract: Attr("content")},
				{Selector: `title`, Extract: Text()},
			},
			Processors: []Processor{TrimSpace},
		},
		FieldDescription: &RuleSet{
			Name: FieldDescription,
			Rules: []RuleEntry{
				{Selector: `meta[property="og:description"]`, Extract: Attr("content")},
				{Selector: `meta[name="description"]`, Extract: Attr("content")},
			},
			Processors: []Processor{TrimSpace},
		},
		FieldIconURL: &RuleSet{
			Name: FieldIconURL,
			Rules: []RuleEntry{
				{Selector: `link[rel="apple-touch-icon"]`, Extract: Attr("href")},
				{Selector: `link[rel="apple-touch-icon-precomposed"]`, Extract: Attr("href")},
				{Selector: `link[rel="icon"]`, Extract: Attr("href")},
				{Selector: `link[rel="fluid-icon"]`, Extract: Attr("href")},
				{Selector: `link[rel="shortcut icon"]`, Extract: Attr("href")},
				{Selector: `link[rel="Shortcut Icon"]`, Extract: Attr("href")},
				{Selector: `link[rel="mask-icon"]`, Extract: Attr("href")},
				{Selector: `html`, Extract: Constant(DefaultIcon)},
			},
			Processors: []Processor{TrimSpace, AbsoluteURL},
			Scorer:     IconSizeScorer,
		},
		FieldImageURL: &RuleSet{
			Name: FieldImageURL,
			Rules: []RuleEntry{
				{Selector: `meta[property="og:image:secure_url"]`, Extract: Attr("content")},
				{Selector: `meta[property="og:image:url"]`, Extract: Attr("content")},
				{Selector: `meta[property="og:image"]`, Extract: Attr("content")},
				{Selector: `meta[name="twitter:image"]`, Extract: Attr("content")},
				{Selector: `meta[property="twitter:image"]`, Extract: Attr("content")},
				{Selector: `meta[name="thumbnail"]`, Extract: Attr("content")},
				{Selector: `link[rel="image_src"]`, Extract: Attr("href")},
			},
			Processors: []Processor{TrimSpace, AbsoluteURL},
		},
		FieldType: &RuleSet{
			Name: FieldType,
			Rules: []RuleEntry{
				{Selector: `meta[property="og:type"]`, Extract: Attr("content")},
			},
			Processors: []Processor{TrimSpace},
		},
		FieldURL: &RuleSet{
			Name: FieldURL,
			Rules: []RuleEntry{
				{Selector: `a.amp-canurl`, Extract: Attr("href")},
				{Selector: `link[rel="canonical"]`, Extract: Attr("href")},
				{Selector: `meta[property="og:url"]`, Extract: Attr("content")},
			},
			Processors: []Processor{TrimSpace, AbsoluteURL},
		},
		FieldKeywords: &RuleSet{
			Name: FieldKeywords,
			Rules: []RuleEntry{
				{Selector: `meta[name="keywords"]`, Extract: Attr("content")},
			},
			Processors: []Processor{SplitList(",")},
		},
		FieldProvider: &RuleSet{
			Name: FieldProvider,
			Rules: []RuleEntry{
				{Selector: `meta[property="og:site_name"]`, Extract: Attr("content")},
			},
			Processors: []Processor{TrimSpace},
		},
		FieldLanguage: &RuleSet{
			Name: FieldLanguage,
			Rules: []RuleEntry{
				{Selector: `html[lang]`, Extract: Attr("lang")},
				{Selector: `meta[http-equiv="content-language"]`, Extract: Attr("content")},
				{Selector: `meta[name="language"]`, Extract: Attr("content")},
			},
			Processors: []Processor{TrimSpace},
		},
	}
}

// MergeRules returns a new tree holding base with overrides applied. Groups
// present on both sides are merged recursively; any other override replaces
// the base node. A nil override removes the field.
func MergeRules(base, overrides Group) Group {
	merged := make(Group, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		if v == nil {
			delete(merged, k)
			continue
		}
		baseGroup, baseOK := merged[k].(Group)
		overrideGroup, overrideOK := v.(Group)
		if baseOK && overrideOK {
			merged[k] = MergeRules(baseGroup, overrideGroup)
			continue
		}
		merged[k] = v
	}
	return merged
}
