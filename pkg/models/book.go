package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is a referenced publication. Books are matched by title only and are
// never externally enriched, so verified stays false on insert.
type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          *string   `json:"author,omitempty"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
