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

// ArtistRepository provides data access for artist records.
// Name and aliases are lookup keys only; this engine never rewrites them.
type ArtistRepository interface {
	FindByName(ctx context.Context, name string) (*models.Artist, error)
	FindByAlias(ctx context.Context, alias string) (*models.Artist, error)
	Create(ctx context.Context, artist *models.Artist) error
	// Update writes the enrichment columns and verified flag. Name and
	// aliases are left untouched.
	Update(ctx context.Context, artist *models.Artist) error
}

type artistRepository struct {
	db database.Querier
}

// NewArtistRepository creates a new ArtistRepository.
func NewArtistRepository(db database.Querier) ArtistRepository {
	return &artistRepository{db: db}
}

var _ ArtistRepository = (*artistRepository)(nil)

const artistColumns = `id, name, aliases, nationality, birth_year, death_year,
	wikipedia_url, bio, image_url, verified, created_at, updated_at`

func (r *artistRepository) scanArtist(row pgx.Row) (*models.Artist, error) {
	var a models.Artist
	err := row.Scan(
		&a.ID, &a.Name, &a.Aliases, &a.Nationality, &a.BirthYear, &a.DeathYear,
		&a.WikipediaURL, &a.Bio, &a.ImageURL, &a.Verified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	return &a, nil
}

func (r *artistRepository) FindByName(ctx context.Context, name string) (*models.Artist, error) {
	query := `SELECT ` + artistColumns + ` FROM artists WHERE lower(name) = lower($1)`
	return r.scanArtist(r.db.QueryRow(ctx, query, name))
}

func (r *artistRepository) FindByAlias(ctx context.Context, alias string) (*models.Artist, error) {
	query := `
		SELECT ` + artistColumns + `
		FROM artists
		WHERE EXISTS (
			SELECT 1 FROM unnest(aliases) AS a WHERE lower(a) = lower($1)
		)
		LIMIT 1`
	return r.scanArtist(r.db.QueryRow(ctx, query, alias))
}

func (r *artistRepository) Create(ctx context.Context, artist *models.Artist) error {
	now := time.Now()
	artist.CreatedAt = now
	artist.UpdatedAt = now

	query := `
		INSERT INTO artists (
			name, aliases, nationality, birth_year, death_year,
			wikipedia_url, bio, image_url, verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		artist.Name,
		textArray(artist.Aliases),
		artist.Nationality,
		artist.BirthYear,
		artist.DeathYear,
		artist.WikipediaURL,
		artist.Bio,
		artist.ImageURL,
		artist.Verified,
		artist.CreatedAt,
		artist.UpdatedAt,
	).Scan(&artist.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create artist: %w", err)
	}

	return nil
}

func (r *artistRepository) Update(ctx context.Context, artist *models.Artist) error {
	query := `
		UPDATE artists
		SET nationality = $2, birth_year = $3, death_year = $4,
		    wikipedia_url = $5, bio = $6, image_url = $7, verified = $8,
		    updated_at = $9
		WHERE id = $1`

	artist.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		artist.ID,
		artist.Nationality,
		artist.BirthYear,
		artist.DeathYear,
		artist.WikipediaURL,
		artist.Bio,
		artist.ImageURL,
		artist.Verified,
		artist.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
