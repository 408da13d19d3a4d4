package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/wikipedia"
)

func TestEntitySearch(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts the best scoring candidate", func(t *testing.T) {
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return []wikipedia.SearchResult{
					{Title: "Paul Colin (rugby)", URL: "https://en.wikipedia.org/wiki/Paul_Colin_(rugby)"},
					{Title: "Paul Colin", URL: "https://en.wikipedia.org/wiki/Paul_Colin"},
				}, nil
			},
			BatchExtractsFunc: func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
				return map[string]wikipedia.Extract{
					"Paul Colin (rugby)": {Title: "Paul Colin (rugby)", Description: "French rugby player"},
					"Paul Colin":         {Title: "Paul Colin", Description: "French poster artist"},
				}, nil
			},
			SummaryFunc: func(ctx context.Context, title string) (*wikipedia.PageSummary, error) {
				thumb := "https://upload.wikimedia.org/colin.jpg"
				return &wikipedia.PageSummary{
					Title:     title,
					Extract:   "Paul Colin was a French poster artist.",
					Thumbnail: &thumb,
				}, nil
			},
			RawWikitextFunc: func(ctx context.Context, title string) (string, error) {
				return "{{Infobox artist\n| nationality = French\n| birth_date = 1892\n}}", nil
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))
		candidate := searcher.Search(ctx, "Paul Colin", models.KindArtist)

		require.NotNil(t, candidate)
		assert.Equal(t, "Paul Colin", candidate.Title)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Paul_Colin", candidate.WikipediaURL)
		assert.Equal(t, "Paul Colin was a French poster artist.", candidate.Description)
		require.NotNil(t, candidate.ImageURL)
		require.NotNil(t, candidate.Fields.Nationality)
		assert.Equal(t, "French", *candidate.Fields.Nationality)
		require.NotNil(t, candidate.Fields.BirthYear)
		assert.Equal(t, 1892, *candidate.Fields.BirthYear)
	})

	t.Run("rejects a namesake in the wrong profession", func(t *testing.T) {
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return []wikipedia.SearchResult{
					{Title: "Jane Doe", URL: "https://en.wikipedia.org/wiki/Jane_Doe"},
				}, nil
			},
			BatchExtractsFunc: func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
				return map[string]wikipedia.Extract{
					"Jane Doe": {Title: "Jane Doe", Description: "American physicist"},
				}, nil
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))

		assert.Nil(t, searcher.Search(ctx, "Jane Doe", models.KindArtist))
	})

	t.Run("skips disambiguation pages", func(t *testing.T) {
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return []wikipedia.SearchResult{
					{Title: "Paul Colin (disambiguation)", URL: "https://en.wikipedia.org/wiki/Paul_Colin_(disambiguation)"},
				}, nil
			},
			BatchExtractsFunc: func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
				return map[string]wikipedia.Extract{
					"Paul Colin (disambiguation)": {
						Title:       "Paul Colin (disambiguation)",
						Description: "poster artist, illustrator and painter pages",
					},
				}, nil
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))

		assert.Nil(t, searcher.Search(ctx, "Paul Colin", models.KindArtist))
	})

	t.Run("search failure degrades to no match", func(t *testing.T) {
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return nil, errors.New("network down")
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))

		assert.Nil(t, searcher.Search(ctx, "Paul Colin", models.KindArtist))
	})

	t.Run("summary failure degrades to no match", func(t *testing.T) {
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return []wikipedia.SearchResult{
					{Title: "Paul Colin", URL: "https://en.wikipedia.org/wiki/Paul_Colin"},
				}, nil
			},
			BatchExtractsFunc: func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
				return map[string]wikipedia.Extract{
					"Paul Colin": {Title: "Paul Colin", Description: "French poster artist"},
				}, nil
			},
			SummaryFunc: func(ctx context.Context, title string) (*wikipedia.PageSummary, error) {
				return nil, errors.New("summary unavailable")
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))

		assert.Nil(t, searcher.Search(ctx, "Paul Colin", models.KindArtist))
	})

	t.Run("no results yields nil without further calls", func(t *testing.T) {
		called := false
		wiki := &mockWikipediaAPI{
			OpenSearchFunc: func(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
				return nil, nil
			},
			BatchExtractsFunc: func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
				called = true
				return nil, nil
			},
		}

		searcher := NewEntitySearcher(wiki, zaptest.NewLogger(t))

		assert.Nil(t, searcher.Search(ctx, "Nobody", models.KindArtist))
		assert.False(t, called)
	})
}
