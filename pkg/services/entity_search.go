package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/wikipedia"
	"github.com/affiche-works/affiche-engine/pkg/wikitext"
)

// WikipediaAPI is the encyclopedia surface the searcher depends on.
// Satisfied by *wikipedia.Client; mocked in tests.
type WikipediaAPI interface {
	OpenSearch(ctx context.Context, query string) ([]wikipedia.SearchResult, error)
	BatchExtracts(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error)
	Summary(ctx context.Context, title string) (*wikipedia.PageSummary, error)
	RawWikitext(ctx context.Context, title string) (string, error)
}

// EntitySearcher finds and scores encyclopedia candidates for a name.
// A nil result means no trustworthy match; that is not an error.
type EntitySearcher interface {
	Search(ctx context.Context, name string, kind models.EntityKind) *models.EnrichmentCandidate
}

type entitySearcher struct {
	wiki   WikipediaAPI
	logger *zap.Logger
}

// NewEntitySearcher creates a new EntitySearcher.
func NewEntitySearcher(wiki WikipediaAPI, logger *zap.Logger) EntitySearcher {
	return &entitySearcher{
		wiki:   wiki,
		logger: logger.Named("entity-search"),
	}
}

var _ EntitySearcher = (*entitySearcher)(nil)

// Search runs the candidate pipeline: open-search, batch extracts, scoring
// with the dual gate, then summary + wikitext retrieval for the accepted
// candidate. Any network failure degrades to "no match"; nothing is retried.
func (s *entitySearcher) Search(ctx context.Context, name string, kind models.EntityKind) *models.EnrichmentCandidate {
	results, err := s.wiki.OpenSearch(ctx, name)
	if err != nil {
		s.logger.Warn("Open search failed", zap.String("name", name), zap.Error(err))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	titles := make([]string, 0, len(results))
	urlByTitle := make(map[string]string, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
		urlByTitle[r.Title] = r.URL
	}

	extracts, err := s.wiki.BatchExtracts(ctx, titles)
	if err != nil {
		s.logger.Warn("Batch extracts failed", zap.String("name", name), zap.Error(err))
		return nil
	}

	best := s.selectBest(name, kind, results, extracts)
	if best == nil {
		s.logger.Debug("No acceptable candidate",
			zap.String("name", name),
			zap.String("kind", string(kind)))
		return nil
	}

	summary, err := s.wiki.Summary(ctx, best.Title)
	if err != nil {
		s.logger.Warn("Summary fetch failed", zap.String("title", best.Title), zap.Error(err))
		return nil
	}

	markup, err := s.wiki.RawWikitext(ctx, best.Title)
	if err != nil {
		s.logger.Warn("Wikitext fetch failed", zap.String("title", best.Title), zap.Error(err))
		return nil
	}

	description := summary.Extract
	if description == "" {
		description = best.Description
	}

	candidate := &models.EnrichmentCandidate{
		Title:        best.Title,
		WikipediaURL: urlByTitle[best.Title],
		Description:  description,
		ImageURL:     summary.Thumbnail,
		Fields:       wikitext.ExtractFields(markup, summary.Extract, kind),
	}

	s.logger.Info("Accepted encyclopedia candidate",
		zap.String("name", name),
		zap.String("title", best.Title),
		zap.Int("score", best.Score))

	return candidate
}

// selectBest scores every non-disambiguation candidate and returns the
// highest scorer that passes the dual gate, or nil.
func (s *entitySearcher) selectBest(name string, kind models.EntityKind, results []wikipedia.SearchResult, extracts map[string]wikipedia.Extract) *scoredCandidate {
	var best *scoredCandidate
	for _, r := range results {
		if isDisambiguation(r.Title) {
			continue
		}

		extract := extracts[r.Title]
		description := extract.Description
		if extract.Extract != "" {
			description = description + " " + extract.Extract
		}

		scored := scoreCandidate(name, r.Title, description, kind)
		if best == nil || scored.Score > best.Score {
			scored.URL = r.URL
			best = &scored
		}
	}

	if best == nil || !best.Acceptable() {
		return nil
	}
	return best
}
