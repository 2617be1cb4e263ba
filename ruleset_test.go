package pagemeta_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queryDocument returns a mock document that answers queries from results
// and fails the test for any selector it does not know.
func queryDocument(t *testing.T, results map[string][]pagemeta.Element) *mock.Document {
	t.Helper()
	return &mock.Document{
		QueryFn: func(selector string) ([]pagemeta.Element, error) {
			elements, ok := results[selector]
			if !ok {
				t.Errorf("unexpected query %q", selector)
			}
			return elements, nil
		},
	}
}

func testContext() *pagemeta.Context {
	return &pagemeta.Context{
		URL:             "http://www.example.com/",
		MakeURLAbsolute: pagemeta.ResolveURL,
		ParseURL:        pagemeta.Hostname,
	}
}

func href(v string) *mock.Element {
	return mock.Attrs(map[string]string{"href": v})
}

func TestBuildRuleset(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for empty rules", func(t *testing.T) {
		t.Parallel()

		_, err := pagemeta.BuildRuleset("empty", nil, nil, nil)
		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
	})

	t.Run("returns EINVALID for rule without extractor", func(t *testing.T) {
		t.Parallel()

		_, err := pagemeta.BuildRuleset("broken", []pagemeta.RuleEntry{{Selector: "a"}}, nil, nil)
		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
	})

	t.Run("returns the first matched raw value with identity extractor", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"link": {href("first"), href("second")},
		})
		identity := func(v any, _ *pagemeta.Context) (any, error) { return v, nil }

		match, err := pagemeta.BuildRuleset("identity",
			[]pagemeta.RuleEntry{{Selector: "link", Extract: pagemeta.Attr("href")}},
			[]pagemeta.Processor{identity}, nil)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "first", got)
	})

	t.Run("never evaluates rules after the first match", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			QueryFn: func(selector string) ([]pagemeta.Element, error) {
				switch selector {
				case "first":
					return nil, nil
				case "second":
					return []pagemeta.Element{href("winner")}, nil
				}
				t.Fatalf("rule %q evaluated after an earlier rule matched", selector)
				return nil, nil
			},
		}
		rules := []pagemeta.RuleEntry{
			{Selector: "first", Extract: pagemeta.Attr("href")},
			{Selector: "second", Extract: pagemeta.Attr("href")},
			{Selector: "third", Extract: pagemeta.Attr("href")},
		}

		match, err := pagemeta.BuildRuleset("ordered", rules, nil, nil)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "winner", got)
	})

	t.Run("skips a rule whose candidates are all empty", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"empty": {href(""), mock.Attrs(nil)},
			"full":  {href("value")},
		})
		rules := []pagemeta.RuleEntry{
			{Selector: "empty", Extract: pagemeta.Attr("href")},
			{Selector: "full", Extract: pagemeta.Attr("href")},
		}

		match, err := pagemeta.BuildRuleset("skip", rules, []pagemeta.Processor{pagemeta.TrimSpace}, nil)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{"a": nil})

		match, err := pagemeta.BuildRuleset("none",
			[]pagemeta.RuleEntry{{Selector: "a", Extract: pagemeta.Attr("href")}}, nil, nil)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("applies processors in declared order", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{"a": {href("x")}})
		appendStage := func(suffix string) pagemeta.Processor {
			return func(v any, _ *pagemeta.Context) (any, error) {
				return v.(string) + suffix, nil
			}
		}

		match, err := pagemeta.BuildRuleset("chain",
			[]pagemeta.RuleEntry{{Selector: "a", Extract: pagemeta.Attr("href")}},
			[]pagemeta.Processor{appendStage("1"), appendStage("2"), appendStage("3")}, nil)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "x123", got)
	})

	t.Run("propagates query errors", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			QueryFn: func(string) ([]pagemeta.Element, error) {
				return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid selector")
			},
		}

		match, err := pagemeta.BuildRuleset("bad",
			[]pagemeta.RuleEntry{{Selector: "[", Extract: pagemeta.Attr("href")}}, nil, nil)
		require.NoError(t, err)

		_, err = match(doc, testContext())
		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
		assert.Contains(t, err.Error(), `"bad"`)
	})

	t.Run("propagates extractor errors", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{"link": {mock.Attrs(nil)}})

		match, err := pagemeta.BuildRuleset("strict",
			[]pagemeta.RuleEntry{{Selector: "link", Extract: pagemeta.RequireAttr("href")}}, nil, nil)
		require.NoError(t, err)

		_, err = match(doc, testContext())
		require.Error(t, err)
		assert.Equal(t, pagemeta.EINVALID, pagemeta.ErrorCode(err))
	})

	t.Run("propagates processor errors", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{"a": {href("x")}})
		boom := errors.New("boom")
		failing := func(any, *pagemeta.Context) (any, error) { return nil, boom }

		match, err := pagemeta.BuildRuleset("failing",
			[]pagemeta.RuleEntry{{Selector: "a", Extract: pagemeta.Attr("href")}},
			[]pagemeta.Processor{failing}, nil)
		require.NoError(t, err)

		_, err = match(doc, testContext())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("is not affected by later changes to the rule slice", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{"a": {href("original")}})
		rules := []pagemeta.RuleEntry{{Selector: "a", Extract: pagemeta.Attr("href")}}

		match, err := pagemeta.BuildRuleset("copy", rules, nil, nil)
		require.NoError(t, err)
		rules[0].Extract = pagemeta.Constant("changed")

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "original", got)
	})
}

func TestBuildRuleset_Scorer(t *testing.T) {
	t.Parallel()

	sized := func(h, sizes string) *mock.Element {
		return mock.Attrs(map[string]string{"href": h, "sizes": sizes})
	}

	t.Run("selects highest scoring candidate regardless of order", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"icon": {sized("any.png", "any"), sized("big.png", "64x64"), sized("small.png", "16x16")},
		})

		match, err := pagemeta.BuildRuleset("icon",
			[]pagemeta.RuleEntry{{Selector: "icon", Extract: pagemeta.Attr("href")}},
			nil, pagemeta.IconSizeScorer)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "big.png", got)
	})

	t.Run("breaks ties by document order", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"icon": {sized("first.png", "32x32"), sized("second.png", "32x32")},
		})

		match, err := pagemeta.BuildRuleset("icon",
			[]pagemeta.RuleEntry{{Selector: "icon", Extract: pagemeta.Attr("href")}},
			nil, pagemeta.IconSizeScorer)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "first.png", got)
	})

	t.Run("ignores empty candidates when ranking", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"icon": {sized("", "512x512"), sized("small.png", "16x16")},
		})

		match, err := pagemeta.BuildRuleset("icon",
			[]pagemeta.RuleEntry{{Selector: "icon", Extract: pagemeta.Attr("href")}},
			nil, pagemeta.IconSizeScorer)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "small.png", got)
	})

	// An earlier rule's only candidate beats a better scored candidate of a
	// later rule: rule order is decided before scoring.
	t.Run("does not rank across rules", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			QueryFn: func(selector string) ([]pagemeta.Element, error) {
				switch selector {
				case "apple":
					return []pagemeta.Element{sized("apple.png", "16x16")}, nil
				case "icon":
					return []pagemeta.Element{sized("huge.png", "1024x1024")}, nil
				}
				return nil, nil
			},
		}
		rules := []pagemeta.RuleEntry{
			{Selector: "apple", Extract: pagemeta.Attr("href")},
			{Selector: "icon", Extract: pagemeta.Attr("href")},
		}

		match, err := pagemeta.BuildRuleset("icon", rules, nil, pagemeta.IconSizeScorer)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "apple.png", got)
	})

	t.Run("passes the processed value to the scorer", func(t *testing.T) {
		t.Parallel()

		doc := queryDocument(t, map[string][]pagemeta.Element{
			"a": {href("/short"), href("/much-longer")},
		})
		var scored []any
		byLength := func(_ pagemeta.Element, v any) float64 {
			scored = append(scored, v)
			return float64(len(v.(string)))
		}

		match, err := pagemeta.BuildRuleset("longest",
			[]pagemeta.RuleEntry{{Selector: "a", Extract: pagemeta.Attr("href")}},
			[]pagemeta.Processor{pagemeta.AbsoluteURL}, byLength)
		require.NoError(t, err)

		got, err := match(doc, testContext())
		require.NoError(t, err)
		assert.Equal(t, "http://www.example.com/much-longer", got)
		assert.Equal(t, []any{"http://www.example.com/short", "http://www.example.com/much-longer"}, scored)
	})
}
