// Package preview turns page URLs into stored previews by fetching, parsing
// and running a rule tree over each page.
package preview

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fwojciec/pagemeta"
	"golang.org/x/sync/errgroup"
)

var _ pagemeta.PreviewExtractor = (*Extractor)(nil)

// DefaultConcurrency is the number of pages ExtractAll processes at once
// when no limit is given.
const DefaultConcurrency = 4

// Extractor fetches a page, evaluates Rules against it and, when Previews
// is set, stores the result.
type Extractor struct {
	Fetcher pagemeta.Fetcher
	Parser  pagemeta.Parser

	// Rules is the rule tree to evaluate. Nil uses pagemeta.DefaultRules.
	Rules pagemeta.Group

	// Optional.
	Previews    pagemeta.PreviewService
	Limiter     pagemeta.DomainLimiter
	RetryDelays []time.Duration
}

// NewExtractor returns an Extractor using the default rules and retry
// delays, without rate limiting or storage.
func NewExtractor(fetcher pagemeta.Fetcher, parser pagemeta.Parser) *Extractor {
	return &Extractor{
		Fetcher:     fetcher,
		Parser:      parser,
		RetryDelays: DefaultRetryDelays(),
	}
}

// Extract returns the preview of the page at rawURL. Only absolute http and
// https URLs are accepted.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*pagemeta.Preview, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, pagemeta.Errorf(pagemeta.EINVALID, "invalid URL %q: must be an absolute http(s) URL", rawURL)
	}

	if e.Limiter != nil {
		if err := e.Limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	html, err := fetchWithRetry(ctx, e.Fetcher, rawURL, e.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	doc, err := e.Parser.Parse(html)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	metadata, err := pagemeta.GetMetadata(doc, rawURL, e.Rules, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", rawURL, err)
	}

	p := &pagemeta.Preview{
		URL:         rawURL,
		Metadata:    metadata,
		ContentHash: ComputeHash(html),
		FetchedAt:   time.Now().UTC(),
	}

	if e.Previews != nil {
		if err := e.Previews.CreatePreview(ctx, p); err != nil {
			return nil, fmt.Errorf("store %s: %w", rawURL, err)
		}
	}

	return p, nil
}

// Result is the outcome of extracting one URL in a batch.
type Result struct {
	URL     string            `json:"url"`
	Preview *pagemeta.Preview `json:"preview,omitempty"`
	Err     error             `json:"-"`
}

// ExtractAll extracts every URL with at most concurrency extractions in
// flight. Results are returned in the order of urls; a failed URL records
// its error without stopping the others. Duplicate URLs are extracted once.
func ExtractAll(ctx context.Context, ex pagemeta.PreviewExtractor, urls []string, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(urls))
	first := make(map[string]int, len(urls))

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, u := range urls {
		results[i].URL = u
		if _, seen := first[u]; seen {
			continue
		}
		first[u] = i

		g.Go(func() error {
			p, err := ex.Extract(ctx, u)
			results[i].Preview = p
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	for i, u := range urls {
		if j := first[u]; j != i {
			results[i] = results[j]
		}
	}

	return results
}
