package pagemeta

import (
	"context"
	"time"
)

// Preview is the extracted metadata of a single page, as stored.
type Preview struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Metadata    Metadata  `json:"metadata"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the preview contains invalid fields.
func (p *Preview) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "preview URL required")
	}
	return nil
}

// PreviewService represents a service for managing stored previews.
type PreviewService interface {
	// CreatePreview stores a preview, replacing any previous preview for
	// the same URL.
	CreatePreview(ctx context.Context, p *Preview) error

	// FindPreviewByID retrieves a preview by ID.
	// Returns ENOTFOUND if the preview does not exist.
	FindPreviewByID(ctx context.Context, id string) (*Preview, error)

	// FindPreviews retrieves previews matching the filter, newest first.
	FindPreviews(ctx context.Context, filter PreviewFilter) ([]*Preview, error)

	// DeletePreview permanently removes a preview.
	// Returns ENOTFOUND if the preview does not exist.
	DeletePreview(ctx context.Context, id string) error
}

// PreviewFilter represents a filter for FindPreviews.
type PreviewFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PreviewExtractor produces the preview of a page from its URL.
type PreviewExtractor interface {
	Extract(ctx context.Context, url string) (*Preview, error)
}
