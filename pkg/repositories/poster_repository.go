package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/database"
)

// PosterRepository writes resolved entity foreign keys back onto a poster.
// The poster table itself is owned by the cataloging subsystem; this engine
// only touches the four link columns and the last_modified timestamp.
type PosterRepository interface {
	SetArtist(ctx context.Context, posterID, artistID uuid.UUID) error
	SetPrinter(ctx context.Context, posterID, printerID uuid.UUID) error
	SetPublisher(ctx context.Context, posterID, publisherID uuid.UUID) error
	SetBook(ctx context.Context, posterID, bookID uuid.UUID) error
}

type posterRepository struct {
	db database.Querier
}

// NewPosterRepository creates a new PosterRepository.
func NewPosterRepository(db database.Querier) PosterRepository {
	return &posterRepository{db: db}
}

var _ PosterRepository = (*posterRepository)(nil)

func (r *posterRepository) setLink(ctx context.Context, posterID uuid.UUID, column string, entityID uuid.UUID) error {
	// column is always one of the four constants below, never user input.
	query := fmt.Sprintf(
		`UPDATE posters SET %s = $2, last_modified = now() WHERE id = $1`, column)

	result, err := r.db.Exec(ctx, query, posterID, entityID)
	if err != nil {
		return fmt.Errorf("failed to set poster %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *posterRepository) SetArtist(ctx context.Context, posterID, artistID uuid.UUID) error {
	return r.setLink(ctx, posterID, "artist_id", artistID)
}

func (r *posterRepository) SetPrinter(ctx context.Context, posterID, printerID uuid.UUID) error {
	return r.setLink(ctx, posterID, "printer_id", printerID)
}

func (r *posterRepository) SetPublisher(ctx context.Context, posterID, publisherID uuid.UUID) error {
	return r.setLink(ctx, posterID, "publisher_id", publisherID)
}

func (r *posterRepository) SetBook(ctx context.Context, posterID, bookID uuid.UUID) error {
	return r.setLink(ctx, posterID, "book_id", bookID)
}
