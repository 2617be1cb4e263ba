package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.PreviewExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PreviewExtractor, logging each extraction with
// the number of fields it produced.
type LoggingExtractor struct {
	next   pagemeta.PreviewExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagemeta.PreviewExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome. Failures
// are logged at error level.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (p *pagemeta.Preview, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		var fields int
		if p != nil {
			fields = len(p.Metadata)
		}
		e.logger.Log(ctx, level, "extract",
			"url", url,
			"fields", fields,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}
