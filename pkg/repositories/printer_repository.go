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

// PrinterRepository provides data access for printing house records.
type PrinterRepository interface {
	FindByName(ctx context.Context, name string) (*models.Printer, error)
	FindByAlias(ctx context.Context, alias string) (*models.Printer, error)
	Create(ctx context.Context, printer *models.Printer) error
	// Update writes the enrichment columns and verified flag. Name and
	// aliases are left untouched.
	Update(ctx context.Context, printer *models.Printer) error
}

type printerRepository struct {
	db database.Querier
}

// NewPrinterRepository creates a new PrinterRepository.
func NewPrinterRepository(db database.Querier) PrinterRepository {
	return &printerRepository{db: db}
}

var _ PrinterRepository = (*printerRepository)(nil)

const printerColumns = `id, name, aliases, location, country, founded_year,
	closed_year, wikipedia_url, bio, image_url, verified, created_at, updated_at`

func (r *printerRepository) scanPrinter(row pgx.Row) (*models.Printer, error) {
	var p models.Printer
	err := row.Scan(
		&p.ID, &p.Name, &p.Aliases, &p.Location, &p.Country, &p.FoundedYear,
		&p.ClosedYear, &p.WikipediaURL, &p.Bio, &p.ImageURL, &p.Verified,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan printer: %w", err)
	}
	return &p, nil
}

func (r *printerRepository) FindByName(ctx context.Context, name string) (*models.Printer, error) {
	query := `SELECT ` + printerColumns + ` FROM printers WHERE lower(name) = lower($1)`
	return r.scanPrinter(r.db.QueryRow(ctx, query, name))
}

func (r *printerRepository) FindByAlias(ctx context.Context, alias string) (*models.Printer, error) {
	query := `
		SELECT ` + printerColumns + `
		FROM printers
		WHERE EXISTS (
			SELECT 1 FROM unnest(aliases) AS a WHERE lower(a) = lower($1)
		)
		LIMIT 1`
	return r.scanPrinter(r.db.QueryRow(ctx, query, alias))
}

func (r *printerRepository) Create(ctx context.Context, printer *models.Printer) error {
	now := time.Now()
	printer.CreatedAt = now
	printer.UpdatedAt = now

	query := `
		INSERT INTO printers (
			name, aliases, location, country, founded_year, closed_year,
			wikipedia_url, bio, image_url, verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		printer.Name,
		textArray(printer.Aliases),
		printer.Location,
		printer.Country,
		printer.FoundedYear,
		printer.ClosedYear,
		printer.WikipediaURL,
		printer.Bio,
		printer.ImageURL,
		printer.Verified,
		printer.CreatedAt,
		printer.UpdatedAt,
	).Scan(&printer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create printer: %w", err)
	}

	return nil
}

func (r *printerRepository) Update(ctx context.Context, printer *models.Printer) error {
	query := `
		UPDATE printers
		SET location = $2, country = $3, founded_year = $4, closed_year = $5,
		    wikipedia_url = $6, bio = $7, image_url = $8, verified = $9,
		    updated_at = $10
		WHERE id = $1`

	printer.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		printer.ID,
		printer.Location,
		printer.Country,
		printer.FoundedYear,
		printer.ClosedYear,
		printer.WikipediaURL,
		printer.Bio,
		printer.ImageURL,
		printer.Verified,
		printer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update printer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
