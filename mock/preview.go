package mock

import (
	"context"

	"github.com/fwojciec/pagemeta"
)

var _ pagemeta.PreviewService = (*PreviewService)(nil)

// PreviewService is a mock implementation of pagemeta.PreviewService.
type PreviewService struct {
	CreatePreviewFn   func(ctx context.Context, p *pagemeta.Preview) error
	FindPreviewByIDFn func(ctx context.Context, id string) (*pagemeta.Preview, error)
	FindPreviewsFn    func(ctx context.Context, filter pagemeta.PreviewFilter) ([]*pagemeta.Preview, error)
	DeletePreviewFn   func(ctx context.Context, id string) error
}

func (s *PreviewService) CreatePreview(ctx context.Context, p *pagemeta.Preview) error {
	return s.CreatePreviewFn(ctx, p)
}

func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*pagemeta.Preview, error) {
	return s.FindPreviewByIDFn(ctx, id)
}

func (s *PreviewService) FindPreviews(ctx context.Context, filter pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
	return s.FindPreviewsFn(ctx, filter)
}

func (s *PreviewService) DeletePreview(ctx context.Context, id string) error {
	return s.DeletePreviewFn(ctx, id)
}

var _ pagemeta.PreviewExtractor = (*PreviewExtractor)(nil)

// PreviewExtractor is a mock implementation of pagemeta.PreviewExtractor.
type PreviewExtractor struct {
	ExtractFn func(ctx context.Context, url string) (*pagemeta.Preview, error)
}

func (e *PreviewExtractor) Extract(ctx context.Context, url string) (*pagemeta.Preview, error) {
	return e.ExtractFn(ctx, url)
}
