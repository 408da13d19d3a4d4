package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/repositories"
)

// Resolution is the outcome of a find-or-create call.
type Resolution struct {
	ID    uuid.UUID `json:"id"`
	IsNew bool      `json:"isNew"`
}

// EntityResolver finds or creates knowledge-base records for names surfaced
// by image analysis. Artist and printer resolution additionally gate on the
// analysis confidence; a gated-out call returns (nil, nil).
//
// Records found complete and not suspicious return immediately with zero
// external calls. Incomplete or suspicious records are re-validated against
// the encyclopedia (and the LLM fallback) before returning.
type EntityResolver interface {
	ResolveArtist(ctx context.Context, name, confidence string) (*Resolution, error)
	ResolvePrinter(ctx context.Context, name, confidence string) (*Resolution, error)
	ResolvePublisher(ctx context.Context, name string) (*Resolution, error)
	ResolveBook(ctx context.Context, title string, author *string, year *int) (*Resolution, error)
}

type entityResolver struct {
	artists    repositories.ArtistRepository
	printers   repositories.PrinterRepository
	publishers repositories.PublisherRepository
	books      repositories.BookRepository
	searcher   EntitySearcher
	researcher Researcher
	countries  CountryNormalizer
	logger     *zap.Logger
}

// NewEntityResolver creates a new EntityResolver.
func NewEntityResolver(
	artists repositories.ArtistRepository,
	printers repositories.PrinterRepository,
	publishers repositories.PublisherRepository,
	books repositories.BookRepository,
	searcher EntitySearcher,
	researcher Researcher,
	countries CountryNormalizer,
	logger *zap.Logger,
) EntityResolver {
	return &entityResolver{
		artists:    artists,
		printers:   printers,
		publishers: publishers,
		books:      books,
		searcher:   searcher,
		researcher: researcher,
		countries:  countries,
		logger:     logger.Named("entity-resolver"),
	}
}

var _ EntityResolver = (*entityResolver)(nil)

// enrich runs the encyclopedia search, then the LLM fallback when the search
// found nothing or found a match missing every kind-specific field.
func (r *entityResolver) enrich(ctx context.Context, name string, kind models.EntityKind) (*models.EnrichmentCandidate, *models.ResearchResult) {
	candidate := r.searcher.Search(ctx, name, kind)

	var research *models.ResearchResult
	if candidate == nil || candidate.Fields.Empty() {
		research = r.researcher.Research(ctx, name, kind)
	}

	return candidate, research
}

// mergeEnrichment combines both sources first-non-nil-wins: Wikipedia-derived
// values always take precedence over the LLM's.
func mergeEnrichment(candidate *models.EnrichmentCandidate, research *models.ResearchResult) (models.EnrichmentFields, *string) {
	var fields models.EnrichmentFields
	var bio *string

	if candidate != nil {
		fields = candidate.Fields
		if candidate.Description != "" {
			desc := candidate.Description
			bio = &desc
		}
	}
	if research != nil {
		fields.Merge(&research.Fields)
		if bio == nil {
			bio = research.Bio
		}
	}

	return fields, bio
}

// normalizeCountry canonicalizes a discovered country in place.
func (r *entityResolver) normalizeCountry(ctx context.Context, country *string) *string {
	if country == nil {
		return nil
	}
	normalized := r.countries.Normalize(ctx, *country)
	if normalized == "" {
		return nil
	}
	return &normalized
}

func fillString(dst **string, src *string) {
	if *dst == nil && src != nil {
		*dst = src
	}
}

func fillInt(dst **int, src *int) {
	if *dst == nil && src != nil {
		*dst = src
	}
}

// suspiciousBio reports whether a stored biography indicates a prior
// wrong-entity match.
func suspiciousBio(bio *string) bool {
	return bio != nil && containsNegativeKeyword(*bio)
}

// ResolveArtist finds or creates an artist record. Requires confirmed
// confidence; anything less returns (nil, nil) without touching storage.
func (r *entityResolver) ResolveArtist(ctx context.Context, name, confidence string) (*Resolution, error) {
	if confidence != models.ConfidenceConfirmed {
		return nil, nil
	}

	artist, err := r.artists.FindByName(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		artist, err = r.artists.FindByAlias(ctx, name)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if artist != nil {
		suspicious := suspiciousBio(artist.Bio)
		if !artist.Incomplete() && !suspicious {
			return &Resolution{ID: artist.ID}, nil
		}

		candidate, research := r.enrich(ctx, name, models.KindArtist)
		fields, bio := mergeEnrichment(candidate, research)

		switch {
		case suspicious && candidate == nil:
			// No trustworthy replacement: clear the bad match.
			artist.WikipediaURL = nil
			artist.ImageURL = nil
			artist.Verified = false
			r.logger.Info("Cleared suspicious artist match", zap.String("name", artist.Name))
		case suspicious:
			// Valid replacement found: the new match overwrites the bad one.
			artist.WikipediaURL = &candidate.WikipediaURL
			artist.Bio = bio
			artist.ImageURL = candidate.ImageURL
			artist.Verified = true
			r.logger.Info("Replaced suspicious artist match",
				zap.String("name", artist.Name),
				zap.String("title", candidate.Title))
		default:
			if candidate != nil {
				fillString(&artist.WikipediaURL, &candidate.WikipediaURL)
				fillString(&artist.ImageURL, candidate.ImageURL)
			}
			fillString(&artist.Bio, bio)
			artist.Verified = artist.Verified || candidate != nil
		}
		fillString(&artist.Nationality, fields.Nationality)
		fillInt(&artist.BirthYear, fields.BirthYear)
		fillInt(&artist.DeathYear, fields.DeathYear)

		if err := r.artists.Update(ctx, artist); err != nil {
			return nil, err
		}
		return &Resolution{ID: artist.ID}, nil
	}

	candidate, research := r.enrich(ctx, name, models.KindArtist)
	fields, bio := mergeEnrichment(candidate, research)

	artist = &models.Artist{
		Name:        strings.TrimSpace(name),
		Nationality: fields.Nationality,
		BirthYear:   fields.BirthYear,
		DeathYear:   fields.DeathYear,
		Bio:         bio,
	}
	if candidate != nil {
		artist.WikipediaURL = &candidate.WikipediaURL
		artist.ImageURL = candidate.ImageURL
		artist.Verified = true
	}

	if err := r.artists.Create(ctx, artist); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Concurrent create of the same name: the stored row wins.
			winner, lookupErr := r.artists.FindByName(ctx, name)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return &Resolution{ID: winner.ID}, nil
		}
		return nil, err
	}

	r.logger.Info("Created artist",
		zap.String("name", artist.Name),
		zap.Bool("verified", artist.Verified))
	return &Resolution{ID: artist.ID, IsNew: true}, nil
}

// ResolvePrinter finds or creates a printing house record. Requires
// confirmed confidence.
func (r *entityResolver) ResolvePrinter(ctx context.Context, name, confidence string) (*Resolution, error) {
	if confidence != models.ConfidenceConfirmed {
		return nil, nil
	}

	printer, err := r.printers.FindByName(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		printer, err = r.printers.FindByAlias(ctx, name)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if printer != nil {
		suspicious := suspiciousBio(printer.Bio)
		if !printer.Incomplete() && !suspicious {
			return &Resolution{ID: printer.ID}, nil
		}

		candidate, research := r.enrich(ctx, name, models.KindPrinter)
		fields, bio := mergeEnrichment(candidate, research)
		fields.Country = r.normalizeCountry(ctx, fields.Country)

		switch {
		case suspicious && candidate == nil:
			printer.WikipediaURL = nil
			printer.ImageURL = nil
			printer.Verified = false
			r.logger.Info("Cleared suspicious printer match", zap.String("name", printer.Name))
		case suspicious:
			printer.WikipediaURL = &candidate.WikipediaURL
			printer.Bio = bio
			printer.ImageURL = candidate.ImageURL
			printer.Verified = true
		default:
			if candidate != nil {
				fillString(&printer.WikipediaURL, &candidate.WikipediaURL)
				fillString(&printer.ImageURL, candidate.ImageURL)
			}
			fillString(&printer.Bio, bio)
			printer.Verified = printer.Verified || candidate != nil
		}
		fillString(&printer.Location, fields.Location)
		fillString(&printer.Country, fields.Country)
		fillInt(&printer.FoundedYear, fields.FoundedYear)
		fillInt(&printer.ClosedYear, fields.ClosedYear)

		if err := r.printers.Update(ctx, printer); err != nil {
			return nil, err
		}
		return &Resolution{ID: printer.ID}, nil
	}

	candidate, research := r.enrich(ctx, name, models.KindPrinter)
	fields, bio := mergeEnrichment(candidate, research)
	fields.Country = r.normalizeCountry(ctx, fields.Country)

	printer = &models.Printer{
		Name:        strings.TrimSpace(name),
		Location:    fields.Location,
		Country:     fields.Country,
		FoundedYear: fields.FoundedYear,
		ClosedYear:  fields.ClosedYear,
		Bio:         bio,
	}
	if candidate != nil {
		printer.WikipediaURL = &candidate.WikipediaURL
		printer.ImageURL = candidate.ImageURL
		printer.Verified = true
	}

	if err := r.printers.Create(ctx, printer); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			winner, lookupErr := r.printers.FindByName(ctx, name)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return &Resolution{ID: winner.ID}, nil
		}
		return nil, err
	}

	r.logger.Info("Created printer",
		zap.String("name", printer.Name),
		zap.Bool("verified", printer.Verified))
	return &Resolution{ID: printer.ID, IsNew: true}, nil
}

// ResolvePublisher finds or creates a publisher record. No confidence gate.
func (r *entityResolver) ResolvePublisher(ctx context.Context, name string) (*Resolution, error) {
	publisher, err := r.publishers.FindByName(ctx, name)
	if errors.Is(err, apperrors.ErrNotFound) {
		publisher, err = r.publishers.FindByAlias(ctx, name)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if publisher != nil {
		suspicious := suspiciousBio(publisher.Bio)
		if !publisher.Incomplete() && !suspicious {
			return &Resolution{ID: publisher.ID}, nil
		}

		candidate, research := r.enrich(ctx, name, models.KindPublisher)
		fields, bio := mergeEnrichment(candidate, research)
		fields.Country = r.normalizeCountry(ctx, fields.Country)

		switch {
		case suspicious && candidate == nil:
			publisher.WikipediaURL = nil
			publisher.ImageURL = nil
			publisher.Verified = false
			r.logger.Info("Cleared suspicious publisher match", zap.String("name", publisher.Name))
		case suspicious:
			publisher.WikipediaURL = &candidate.WikipediaURL
			publisher.Bio = bio
			publisher.ImageURL = candidate.ImageURL
			publisher.Verified = true
		default:
			if candidate != nil {
				fillString(&publisher.WikipediaURL, &candidate.WikipediaURL)
				fillString(&publisher.ImageURL, candidate.ImageURL)
			}
			fillString(&publisher.Bio, bio)
			publisher.Verified = publisher.Verified || candidate != nil
		}
		fillString(&publisher.PublicationType, fields.PublicationType)
		fillString(&publisher.Country, fields.Country)
		fillInt(&publisher.FoundedYear, fields.FoundedYear)
		fillInt(&publisher.CeasedYear, fields.CeasedYear)

		if err := r.publishers.Update(ctx, publisher); err != nil {
			return nil, err
		}
		return &Resolution{ID: publisher.ID}, nil
	}

	candidate, research := r.enrich(ctx, name, models.KindPublisher)
	fields, bio := mergeEnrichment(candidate, research)
	fields.Country = r.normalizeCountry(ctx, fields.Country)

	publisher = &models.Publisher{
		Name:            strings.TrimSpace(name),
		PublicationType: fields.PublicationType,
		Country:         fields.Country,
		FoundedYear:     fields.FoundedYear,
		CeasedYear:      fields.CeasedYear,
		Bio:             bio,
	}
	if candidate != nil {
		publisher.WikipediaURL = &candidate.WikipediaURL
		publisher.ImageURL = candidate.ImageURL
		publisher.Verified = true
	}

	if err := r.publishers.Create(ctx, publisher); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			winner, lookupErr := r.publishers.FindByName(ctx, name)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return &Resolution{ID: winner.ID}, nil
		}
		return nil, err
	}

	r.logger.Info("Created publisher",
		zap.String("name", publisher.Name),
		zap.Bool("verified", publisher.Verified))
	return &Resolution{ID: publisher.ID, IsNew: true}, nil
}

// ResolveBook finds or creates a book by exact title. Books get no external
// enrichment: gaps are filled only from caller-supplied author/year, and new
// rows are never verified.
func (r *entityResolver) ResolveBook(ctx context.Context, title string, author *string, year *int) (*Resolution, error) {
	book, err := r.books.FindByTitle(ctx, title)
	if err == nil {
		changed := false
		if book.Author == nil && author != nil {
			book.Author = author
			changed = true
		}
		if book.PublicationYear == nil && year != nil {
			book.PublicationYear = year
			changed = true
		}
		if changed {
			if err := r.books.Update(ctx, book); err != nil {
				return nil, err
			}
		}
		return &Resolution{ID: book.ID}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	book = &models.Book{
		Title:           strings.TrimSpace(title),
		Author:          author,
		PublicationYear: year,
	}

	if err := r.books.Create(ctx, book); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			winner, lookupErr := r.books.FindByTitle(ctx, title)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return &Resolution{ID: winner.ID}, nil
		}
		return nil, err
	}

	r.logger.Info("Created book", zap.String("title", book.Title))
	return &Resolution{ID: book.ID, IsNew: true}, nil
}
