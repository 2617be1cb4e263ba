package preview

import (
	"context"
	"time"

	"github.com/fwojciec/pagemeta"
)

// DefaultRetryDelays returns the backoff delays between fetch attempts:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches url, retrying after each delay in turn. Invalid
// requests are never retried.
func fetchWithRetry(ctx context.Context, f pagemeta.Fetcher, url string, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		html, err := f.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt == len(delays) || pagemeta.ErrorCode(err) == pagemeta.EINVALID {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
