package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagemeta"
	main "github.com/fwojciec/pagemeta/cmd/pagemeta"
	"github.com/fwojciec/pagemeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists previews with their titles", func(t *testing.T) {
		t.Parallel()

		var gotFilter pagemeta.PreviewFilter
		previews := &mock.PreviewService{
			FindPreviewsFn: func(_ context.Context, filter pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
				gotFilter = filter
				return []*pagemeta.Preview{{
					ID:        "p-1",
					URL:       "https://example.com/",
					Metadata:  pagemeta.Metadata{"title": "Example"},
					FetchedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
				}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Previews: previews}

		require.NoError(t, (&main.ListCmd{Limit: 5, Offset: 10}).Run(deps))
		assert.Equal(t, "p-1  2026-01-02 03:04:05  https://example.com/  Example\n", stdout.String())
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Equal(t, 10, gotFilter.Offset)
	})

	t.Run("shows hint when empty", func(t *testing.T) {
		t.Parallel()

		previews := &mock.PreviewService{
			FindPreviewsFn: func(context.Context, pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
				return []*pagemeta.Preview{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Previews: previews}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No previews found")
	})

	t.Run("prints JSON", func(t *testing.T) {
		t.Parallel()

		previews := &mock.PreviewService{
			FindPreviewsFn: func(context.Context, pagemeta.PreviewFilter) ([]*pagemeta.Preview, error) {
				return []*pagemeta.Preview{{ID: "p-1", URL: "https://example.com/"}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Previews: previews}

		require.NoError(t, (&main.ListCmd{JSON: true}).Run(deps))
		assert.Contains(t, stdout.String(), `"id": "p-1"`)
	})
}
