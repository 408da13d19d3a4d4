package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/database"
	"github.com/affiche-works/affiche-engine/pkg/models"
)

// CountryRepository provides data access for the managed country list.
type CountryRepository interface {
	// FindByNameOrCode matches case-insensitively on the stored name, the
	// stored code, or the code derived from the free-text alias.
	FindByNameOrCode(ctx context.Context, name, code string) (*models.Country, error)
	// Create inserts a new country with the next display_order.
	Create(ctx context.Context, country *models.Country) error
}

type countryRepository struct {
	db database.Querier
}

// NewCountryRepository creates a new CountryRepository.
func NewCountryRepository(db database.Querier) CountryRepository {
	return &countryRepository{db: db}
}

var _ CountryRepository = (*countryRepository)(nil)

func (r *countryRepository) FindByNameOrCode(ctx context.Context, name, code string) (*models.Country, error) {
	query := `
		SELECT id, name, code, display_order, created_at
		FROM countries
		WHERE lower(name) = lower($1)
		   OR ($2 <> '' AND upper(code) = upper($2))
		LIMIT 1`

	var c models.Country
	err := r.db.QueryRow(ctx, query, name, code).Scan(
		&c.ID, &c.Name, &c.Code, &c.DisplayOrder, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query country: %w", err)
	}

	return &c, nil
}

func (r *countryRepository) Create(ctx context.Context, country *models.Country) error {
	query := `
		INSERT INTO countries (name, code, display_order)
		VALUES ($1, $2, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM countries))
		RETURNING id, display_order, created_at`

	err := r.db.QueryRow(ctx, query, country.Name, country.Code).Scan(
		&country.ID, &country.DisplayOrder, &country.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create country: %w", err)
	}

	return nil
}
