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

// BookRepository provides data access for book records. Books are matched by
// exact title only; there is no alias lookup.
type BookRepository interface {
	FindByTitle(ctx context.Context, title string) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	// Update writes author and publication year.
	Update(ctx context.Context, book *models.Book) error
}

type bookRepository struct {
	db database.Querier
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db database.Querier) BookRepository {
	return &bookRepository{db: db}
}

var _ BookRepository = (*bookRepository)(nil)

func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*models.Book, error) {
	query := `
		SELECT id, title, author, publication_year, verified, created_at, updated_at
		FROM books
		WHERE lower(title) = lower($1)`

	var b models.Book
	err := r.db.QueryRow(ctx, query, title).Scan(
		&b.ID, &b.Title, &b.Author, &b.PublicationYear, &b.Verified,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	query := `
		INSERT INTO books (title, author, publication_year, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.Verified,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create book: %w", err)
	}

	return nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET author = $2, publication_year = $3, updated_at = $4
		WHERE id = $1`

	book.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		book.ID, book.Author, book.PublicationYear, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
