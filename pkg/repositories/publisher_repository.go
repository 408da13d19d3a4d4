package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/database"
	"github.com/affiche-works/affiche-engine/pkg/models"
)

// PublisherRepository provides data access for publisher records.
type PublisherRepository interface {
	FindByName(ctx context.Context, name string) (*models.Publisher, error)
	FindByAlias(ctx context.Context, alias string) (*models.Publisher, error)
	Create(ctx context.Context, publisher *models.Publisher) error
	// Update writes the enrichment columns and verified flag. Name and
	// aliases are left untouched.
	Update(ctx context.Context, publisher *models.Publisher) error
}

type publisherRepository struct {
	db database.Querier
}

// NewPublisherRepository creates a new PublisherRepository.
func NewPublisherRepository(db database.Querier) PublisherRepository {
	return &publisherRepository{db: db}
}

var _ PublisherRepository = (*publisherRepository)(nil)

const publisherColumns = `id, name, aliases, publication_type, country,
	founded_year, ceased_year, wikipedia_url, bio, image_url, verified,
	created_at, updated_at`

func (r *publisherRepository) scanPublisher(row pgx.Row) (*models.Publisher, error) {
	var p models.Publisher
	err := row.Scan(
		&p.ID, &p.Name, &p.Aliases, &p.PublicationType, &p.Country,
		&p.FoundedYear, &p.CeasedYear, &p.WikipediaURL, &p.Bio, &p.ImageURL,
		&p.Verified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan publisher: %w", err)
	}
	return &p, nil
}

func (r *publisherRepository) FindByName(ctx context.Context, name string) (*models.Publisher, error) {
	query := `SELECT ` + publisherColumns + ` FROM publishers WHERE lower(name) = lower($1)`
	return r.scanPublisher(r.db.QueryRow(ctx, query, name))
}

func (r *publisherRepository) FindByAlias(ctx context.Context, alias string) (*models.Publisher, error) {
	query := `
		SELECT ` + publisherColumns + `
		FROM publishers
		WHERE EXISTS (
			SELECT 1 FROM unnest(aliases) AS a WHERE lower(a) = lower($1)
		)
		LIMIT 1`
	return r.scanPublisher(r.db.QueryRow(ctx, query, alias))
}

func (r *publisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	now := time.Now()
	publisher.CreatedAt = now
	publisher.UpdatedAt = now

	query := `
		INSERT INTO publishers (
			name, aliases, publication_type, country, founded_year, ceased_year,
			wikipedia_url, bio, image_url, verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		publisher.Name,
		textArray(publisher.Aliases),
		publisher.PublicationType,
		publisher.Country,
		publisher.FoundedYear,
		publisher.CeasedYear,
		publisher.WikipediaURL,
		publisher.Bio,
		publisher.ImageURL,
		publisher.Verified,
		publisher.CreatedAt,
		publisher.UpdatedAt,
	).Scan(&publisher.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create publisher: %w", err)
	}

	return nil
}

func (r *publisherRepository) Update(ctx context.Context, publisher *models.Publisher) error {
	query := `
		UPDATE publishers
		SET publication_type = $2, country = $3, founded_year = $4,
		    ceased_year = $5, wikipedia_url = $6, bio = $7, image_url = $8,
		    verified = $9, updated_at = $10
		WHERE id = $1`

	publisher.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		publisher.ID,
		publisher.PublicationType,
		publisher.Country,
		publisher.FoundedYear,
		publisher.CeasedYear,
		publisher.WikipediaURL,
		publisher.Bio,
		publisher.ImageURL,
		publisher.Verified,
		publisher.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update publisher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
