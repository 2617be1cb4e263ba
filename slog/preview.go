package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.PreviewService = (*LoggingPreviewService)(nil)

// LoggingPreviewService wraps a PreviewService with debug logging of
// writes. Reads are delegated unlogged.
type LoggingPreviewService struct {
	next   pagemeta.PreviewService
	logger *slog.Logger
}

// NewLoggingPreviewService creates a new LoggingPreviewService.
func NewLoggingPreviewService(next pagemeta.PreviewService, logger *slog.Logger) *LoggingPreviewService {
	return &LoggingPreviewService{next: next, logger: logger}
}

// CreatePreview delegates to the wrapped service and logs the stored ID.
func (s *LoggingPreviewService) CreatePreview(ctx context.Context, p *pagemeta.Preview) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "store preview",
			"url", p.URL,
			"id", p.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePreview(ctx, p)
}

func (s *LoggingPreviewService) FindPreviewByID(ctx context.Context, id string) (*pagemeta.Preview, error) {
	return s.next.FindPreviewByID(ctx, id)
}

func (s *LoggingPreviewService) FindPreviews(ctx context.Context, filter pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
	return s.next.FindPreviews(ctx, filter)
}

// DeletePreview delegates to the wrapped service and logs the outcome.
func (s *LoggingPreviewService) DeletePreview(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.DebugContext(ctx, "delete preview",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePreview(ctx, id)
}
