package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagemeta"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemeta.PreviewService = (*PreviewService)(nil)

const previewColumns = "id, url, metadata, content_hash, fetched_at"

// PreviewService implements pagemeta.PreviewService using SQLite.
type PreviewService struct {
	db *DB
}

// NewPreviewService creates a new PreviewService.
func NewPreviewService(db *DB) *PreviewService {
	return &PreviewService{db: db}
}

// CreatePreview stores p. A preview already stored for the same URL is
// replaced in place and keeps its ID. A zero FetchedAt is set to now.
func (s *PreviewService) CreatePreview(ctx context.Context, p *pagemeta.Preview) error {
	if err := p.Validate(); err != nil {
		return err
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = pagemeta.Metadata{}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return pagemeta.Errorf(pagemeta.EINVALID, "metadata is not serializable: %v", err)
	}

	fetchedAt := p.FetchedAt.UTC()
	if p.FetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO previews (id, url, metadata, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			metadata = excluded.metadata,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), p.URL, string(data), p.ContentHash, fetchedAt.Format(timestampFormat)).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}

	p.ID = id
	p.FetchedAt = fetchedAt
	return nil
}

// FindPreviewByID retrieves a preview by ID.
func (s *PreviewService) FindPreviewByID(ctx context.Context, id string) (*pagemeta.Preview, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+previewColumns+" FROM previews WHERE id = ?", id)

	p, err := scanPreview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemeta.Errorf(pagemeta.ENOTFOUND, "preview not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindPreviews retrieves previews matching the filter, most recently
// fetched first.
func (s *PreviewService) FindPreviews(ctx context.Context, filter pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + previewColumns + " FROM previews WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	previews := []*pagemeta.Preview{}
	for rows.Next() {
		p, err := scanPreview(rows)
		if err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}

	return previews, rows.Err()
}

// DeletePreview permanently removes a preview.
func (s *PreviewService) DeletePreview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM previews WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagemeta.Errorf(pagemeta.ENOTFOUND, "preview not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPreview(row scanner) (*pagemeta.Preview, error) {
	var p pagemeta.Preview
	var metadata, fetchedAt string

	if err := row.Scan(&p.ID, &p.URL, &metadata, &p.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(metadata), &p.Metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	var err error
	if p.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
