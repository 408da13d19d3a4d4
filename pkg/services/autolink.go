package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/repositories"
)

// PosterAnalysis carries the free-text names and confidence labels the image
// analysis produced for one poster.
type PosterAnalysis struct {
	Artist            string  `json:"artist,omitempty"`
	ArtistConfidence  string  `json:"artistConfidence,omitempty"`
	Printer           string  `json:"printer,omitempty"`
	PrinterConfidence string  `json:"printerConfidence,omitempty"`
	Publication       string  `json:"publication,omitempty"`
	BookTitle         string  `json:"bookTitle,omitempty"`
	BookAuthor        *string `json:"bookAuthor,omitempty"`
	BookYear          *int    `json:"bookYear,omitempty"`
}

// AutoLinkResult reports which entities were linked. Fields that were
// ineligible or unresolved are absent, never null.
type AutoLinkResult struct {
	Artist    *Resolution `json:"artistLinked,omitempty"`
	Printer   *Resolution `json:"printerLinked,omitempty"`
	Publisher *Resolution `json:"publisherLinked,omitempty"`
	Book      *Resolution `json:"bookLinked,omitempty"`
}

// AutoLinker resolves a poster's analyzed names into entity records and
// writes the foreign keys back onto the poster.
type AutoLinker interface {
	AutoLink(ctx context.Context, posterID uuid.UUID, analysis PosterAnalysis) (*AutoLinkResult, error)
}

type autoLinker struct {
	resolver EntityResolver
	posters  repositories.PosterRepository
	logger   *zap.Logger
}

// NewAutoLinker creates a new AutoLinker.
func NewAutoLinker(resolver EntityResolver, posters repositories.PosterRepository, logger *zap.Logger) AutoLinker {
	return &autoLinker{
		resolver: resolver,
		posters:  posters,
		logger:   logger.Named("auto-link"),
	}
}

var _ AutoLinker = (*autoLinker)(nil)

// placeholderNames are the literal stand-ins the vision model emits when it
// cannot identify a name. They never resolve to entities.
var placeholderNames = map[string]bool{
	"unknown":      true,
	"unidentified": true,
	"n/a":          true,
	"none":         true,
}

func isPlaceholderName(name string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	return trimmed == "" || placeholderNames[trimmed]
}

// AutoLink resolves the four entity kinds strictly sequentially. Enrichment
// is best-effort end to end: one field's storage failure is logged and the
// remaining fields still run.
func (l *autoLinker) AutoLink(ctx context.Context, posterID uuid.UUID, analysis PosterAnalysis) (*AutoLinkResult, error) {
	result := &AutoLinkResult{}

	if !isPlaceholderName(analysis.Artist) {
		resolution, err := l.resolver.ResolveArtist(ctx, analysis.Artist, analysis.ArtistConfidence)
		result.Artist = l.link(ctx, posterID, "artist", resolution, err, l.posters.SetArtist)
	}

	if !isPlaceholderName(analysis.Printer) {
		resolution, err := l.resolver.ResolvePrinter(ctx, analysis.Printer, analysis.PrinterConfidence)
		result.Printer = l.link(ctx, posterID, "printer", resolution, err, l.posters.SetPrinter)
	}

	if !isPlaceholderName(analysis.Publication) {
		resolution, err := l.resolver.ResolvePublisher(ctx, analysis.Publication)
		result.Publisher = l.link(ctx, posterID, "publisher", resolution, err, l.posters.SetPublisher)
	}

	if !isPlaceholderName(analysis.BookTitle) {
		resolution, err := l.resolver.ResolveBook(ctx, analysis.BookTitle, analysis.BookAuthor, analysis.BookYear)
		result.Book = l.link(ctx, posterID, "book", resolution, err, l.posters.SetBook)
	}

	return result, nil
}

// link writes one foreign key for a successful resolution. Failures are
// logged and yield no link; they never abort the remaining fields.
func (l *autoLinker) link(
	ctx context.Context,
	posterID uuid.UUID,
	field string,
	resolution *Resolution,
	err error,
	set func(ctx context.Context, posterID, entityID uuid.UUID) error,
) *Resolution {
	if err != nil {
		l.logger.Error("Entity resolution failed",
			zap.String("field", field),
			zap.String("poster_id", posterID.String()),
			zap.Error(err))
		return nil
	}
	if resolution == nil {
		return nil
	}

	if err := set(ctx, posterID, resolution.ID); err != nil {
		l.logger.Error("Failed to write poster link",
			zap.String("field", field),
			zap.String("poster_id", posterID.String()),
			zap.Error(err))
		return nil
	}

	l.logger.Info("Linked poster entity",
		zap.String("field", field),
		zap.String("poster_id", posterID.String()),
		zap.String("entity_id", resolution.ID.String()),
		zap.Bool("is_new", resolution.IsNew))

	return resolution
}
