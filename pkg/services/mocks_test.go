package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/repositories"
	"github.com/affiche-works/affiche-engine/pkg/wikipedia"
)

// Function-field mocks. Unset fields return ErrNotFound for lookups and nil
// for writes, so tests only wire the calls they care about.

type mockArtistRepository struct {
	FindByNameFunc  func(ctx context.Context, name string) (*models.Artist, error)
	FindByAliasFunc func(ctx context.Context, alias string) (*models.Artist, error)
	CreateFunc      func(ctx context.Context, artist *models.Artist) error
	UpdateFunc      func(ctx context.Context, artist *models.Artist) error

	CreateCalls int
	UpdateCalls int
}

var _ repositories.ArtistRepository = (*mockArtistRepository)(nil)

func (m *mockArtistRepository) FindByName(ctx context.Context, name string) (*models.Artist, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockArtistRepository) FindByAlias(ctx context.Context, alias string) (*models.Artist, error) {
	if m.FindByAliasFunc != nil {
		return m.FindByAliasFunc(ctx, alias)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, artist)
	}
	artist.ID = uuid.New()
	return nil
}

func (m *mockArtistRepository) Update(ctx context.Context, artist *models.Artist) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, artist)
	}
	return nil
}

type mockPrinterRepository struct {
	FindByNameFunc  func(ctx context.Context, name string) (*models.Printer, error)
	FindByAliasFunc func(ctx context.Context, alias string) (*models.Printer, error)
	CreateFunc      func(ctx context.Context, printer *models.Printer) error
	UpdateFunc      func(ctx context.Context, printer *models.Printer) error

	CreateCalls int
	UpdateCalls int
}

var _ repositories.PrinterRepository = (*mockPrinterRepository)(nil)

func (m *mockPrinterRepository) FindByName(ctx context.Context, name string) (*models.Printer, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPrinterRepository) FindByAlias(ctx context.Context, alias string) (*models.Printer, error) {
	if m.FindByAliasFunc != nil {
		return m.FindByAliasFunc(ctx, alias)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPrinterRepository) Create(ctx context.Context, printer *models.Printer) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, printer)
	}
	printer.ID = uuid.New()
	return nil
}

func (m *mockPrinterRepository) Update(ctx context.Context, printer *models.Printer) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, printer)
	}
	return nil
}

type mockPublisherRepository struct {
	FindByNameFunc  func(ctx context.Context, name string) (*models.Publisher, error)
	FindByAliasFunc func(ctx context.Context, alias string) (*models.Publisher, error)
	CreateFunc      func(ctx context.Context, publisher *models.Publisher) error
	UpdateFunc      func(ctx context.Context, publisher *models.Publisher) error

	CreateCalls int
	UpdateCalls int
}

var _ repositories.PublisherRepository = (*mockPublisherRepository)(nil)

func (m *mockPublisherRepository) FindByName(ctx context.Context, name string) (*models.Publisher, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPublisherRepository) FindByAlias(ctx context.Context, alias string) (*models.Publisher, error) {
	if m.FindByAliasFunc != nil {
		return m.FindByAliasFunc(ctx, alias)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockPublisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, publisher)
	}
	publisher.ID = uuid.New()
	return nil
}

func (m *mockPublisherRepository) Update(ctx context.Context, publisher *models.Publisher) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, publisher)
	}
	return nil
}

type mockBookRepository struct {
	FindByTitleFunc func(ctx context.Context, title string) (*models.Book, error)
	CreateFunc      func(ctx context.Context, book *models.Book) error
	UpdateFunc      func(ctx context.Context, book *models.Book) error

	CreateCalls int
	UpdateCalls int
}

var _ repositories.BookRepository = (*mockBookRepository)(nil)

func (m *mockBookRepository) FindByTitle(ctx context.Context, title string) (*models.Book, error) {
	if m.FindByTitleFunc != nil {
		return m.FindByTitleFunc(ctx, title)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockBookRepository) Create(ctx context.Context, book *models.Book) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, book)
	}
	book.ID = uuid.New()
	return nil
}

func (m *mockBookRepository) Update(ctx context.Context, book *models.Book) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, book)
	}
	return nil
}

type mockCountryRepository struct {
	FindByNameOrCodeFunc func(ctx context.Context, name, code string) (*models.Country, error)
	CreateFunc           func(ctx context.Context, country *models.Country) error

	CreateCalls int
}

var _ repositories.CountryRepository = (*mockCountryRepository)(nil)

func (m *mockCountryRepository) FindByNameOrCode(ctx context.Context, name, code string) (*models.Country, error) {
	if m.FindByNameOrCodeFunc != nil {
		return m.FindByNameOrCodeFunc(ctx, name, code)
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCountryRepository) Create(ctx context.Context, country *models.Country) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, country)
	}
	country.ID = uuid.New()
	return nil
}

type mockPosterRepository struct {
	SetArtistFunc    func(ctx context.Context, posterID, artistID uuid.UUID) error
	SetPrinterFunc   func(ctx context.Context, posterID, printerID uuid.UUID) error
	SetPublisherFunc func(ctx context.Context, posterID, publisherID uuid.UUID) error
	SetBookFunc      func(ctx context.Context, posterID, bookID uuid.UUID) error

	SetArtistCalls    int
	SetPrinterCalls   int
	SetPublisherCalls int
	SetBookCalls      int
}

var _ repositories.PosterRepository = (*mockPosterRepository)(nil)

func (m *mockPosterRepository) SetArtist(ctx context.Context, posterID, artistID uuid.UUID) error {
	m.SetArtistCalls++
	if m.SetArtistFunc != nil {
		return m.SetArtistFunc(ctx, posterID, artistID)
	}
	return nil
}

func (m *mockPosterRepository) SetPrinter(ctx context.Context, posterID, printerID uuid.UUID) error {
	m.SetPrinterCalls++
	if m.SetPrinterFunc != nil {
		return m.SetPrinterFunc(ctx, posterID, printerID)
	}
	return nil
}

func (m *mockPosterRepository) SetPublisher(ctx context.Context, posterID, publisherID uuid.UUID) error {
	m.SetPublisherCalls++
	if m.SetPublisherFunc != nil {
		return m.SetPublisherFunc(ctx, posterID, publisherID)
	}
	return nil
}

func (m *mockPosterRepository) SetBook(ctx context.Context, posterID, bookID uuid.UUID) error {
	m.SetBookCalls++
	if m.SetBookFunc != nil {
		return m.SetBookFunc(ctx, posterID, bookID)
	}
	return nil
}

type mockWikipediaAPI struct {
	OpenSearchFunc    func(ctx context.Context, query string) ([]wikipedia.SearchResult, error)
	BatchExtractsFunc func(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error)
	SummaryFunc       func(ctx context.Context, title string) (*wikipedia.PageSummary, error)
	RawWikitextFunc   func(ctx context.Context, title string) (string, error)
}

var _ WikipediaAPI = (*mockWikipediaAPI)(nil)

func (m *mockWikipediaAPI) OpenSearch(ctx context.Context, query string) ([]wikipedia.SearchResult, error) {
	if m.OpenSearchFunc != nil {
		return m.OpenSearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockWikipediaAPI) BatchExtracts(ctx context.Context, titles []string) (map[string]wikipedia.Extract, error) {
	if m.BatchExtractsFunc != nil {
		return m.BatchExtractsFunc(ctx, titles)
	}
	return map[string]wikipedia.Extract{}, nil
}

func (m *mockWikipediaAPI) Summary(ctx context.Context, title string) (*wikipedia.PageSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, title)
	}
	return &wikipedia.PageSummary{Title: title}, nil
}

func (m *mockWikipediaAPI) RawWikitext(ctx context.Context, title string) (string, error) {
	if m.RawWikitextFunc != nil {
		return m.RawWikitextFunc(ctx, title)
	}
	return "", nil
}

type mockEntitySearcher struct {
	SearchFunc  func(ctx context.Context, name string, kind models.EntityKind) *models.EnrichmentCandidate
	SearchCalls int
}

var _ EntitySearcher = (*mockEntitySearcher)(nil)

func (m *mockEntitySearcher) Search(ctx context.Context, name string, kind models.EntityKind) *models.EnrichmentCandidate {
	m.SearchCalls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, name, kind)
	}
	return nil
}

type mockResearcher struct {
	ResearchFunc  func(ctx context.Context, name string, kind models.EntityKind) *models.ResearchResult
	ResearchCalls int
}

var _ Researcher = (*mockResearcher)(nil)

func (m *mockResearcher) Research(ctx context.Context, name string, kind models.EntityKind) *models.ResearchResult {
	m.ResearchCalls++
	if m.ResearchFunc != nil {
		return m.ResearchFunc(ctx, name, kind)
	}
	return nil
}

type mockCountryNormalizer struct {
	NormalizeFunc func(ctx context.Context, freeText string) string
}

var _ CountryNormalizer = (*mockCountryNormalizer)(nil)

func (m *mockCountryNormalizer) Normalize(ctx context.Context, freeText string) string {
	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(ctx, freeText)
	}
	return freeText
}

type mockEntityResolver struct {
	ResolveArtistFunc    func(ctx context.Context, name, confidence string) (*Resolution, error)
	ResolvePrinterFunc   func(ctx context.Context, name, confidence string) (*Resolution, error)
	ResolvePublisherFunc func(ctx context.Context, name string) (*Resolution, error)
	ResolveBookFunc      func(ctx context.Context, title string, author *string, year *int) (*Resolution, error)
}

var _ EntityResolver = (*mockEntityResolver)(nil)

func (m *mockEntityResolver) ResolveArtist(ctx context.Context, name, confidence string) (*Resolution, error) {
	if m.ResolveArtistFunc != nil {
		return m.ResolveArtistFunc(ctx, name, confidence)
	}
	return nil, nil
}

func (m *mockEntityResolver) ResolvePrinter(ctx context.Context, name, confidence string) (*Resolution, error) {
	if m.ResolvePrinterFunc != nil {
		return m.ResolvePrinterFunc(ctx, name, confidence)
	}
	return nil, nil
}

func (m *mockEntityResolver) ResolvePublisher(ctx context.Context, name string) (*Resolution, error) {
	if m.ResolvePublisherFunc != nil {
		return m.ResolvePublisherFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockEntityResolver) ResolveBook(ctx context.Context, title string, author *string, year *int) (*Resolution, error) {
	if m.ResolveBookFunc != nil {
		return m.ResolveBookFunc(ctx, title, author, year)
	}
	return nil, nil
}
