package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies which knowledge-base table a name resolves into.
type EntityKind string

const (
	KindArtist    EntityKind = "artist"
	KindPrinter   EntityKind = "printer"
	KindPublisher EntityKind = "publisher"
)

// Confidence labels produced by the upstream image analysis.
// Only ConfidenceConfirmed gates artist and printer resolution.
const (
	ConfidenceConfirmed = "confirmed"
	ConfidenceLikely    = "likely"
	ConfidenceUncertain = "uncertain"
)

// Artist is a poster artist record. Aliases are read for lookup but never
// written by this engine.
type Artist struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Aliases      []string  `json:"aliases,omitempty"`
	Nationality  *string   `json:"nationality,omitempty"`
	BirthYear    *int      `json:"birth_year,omitempty"`
	DeathYear    *int      `json:"death_year,omitempty"`
	WikipediaURL *string   `json:"wikipedia_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Incomplete reports whether any enrichment field is still missing. The
// image URL is deliberately excluded: most pages carry no thumbnail and its
// absence alone should not defeat the idempotent fast path.
func (a *Artist) Incomplete() bool {
	return a.Nationality == nil || a.BirthYear == nil || a.DeathYear == nil ||
		a.WikipediaURL == nil || a.Bio == nil
}

// Printer is a printing house record.
type Printer struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Aliases      []string  `json:"aliases,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Country      *string   `json:"country,omitempty"`
	FoundedYear  *int      `json:"founded_year,omitempty"`
	ClosedYear   *int      `json:"closed_year,omitempty"`
	WikipediaURL *string   `json:"wikipedia_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Incomplete reports whether any enrichment field is still missing.
func (p *Printer) Incomplete() bool {
	return p.Location == nil || p.Country == nil || p.FoundedYear == nil ||
		p.ClosedYear == nil || p.WikipediaURL == nil || p.Bio == nil
}

// Publisher is a publication/publishing house record.
type Publisher struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Aliases         []string  `json:"aliases,omitempty"`
	PublicationType *string   `json:"publication_type,omitempty"`
	Country         *string   `json:"country,omitempty"`
	FoundedYear     *int      `json:"founded_year,omitempty"`
	CeasedYear      *int      `json:"ceased_year,omitempty"`
	WikipediaURL    *string   `json:"wikipedia_url,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	ImageURL        *string   `json:"image_url,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Incomplete reports whether any enrichment field is still missing.
func (p *Publisher) Incomplete() bool {
	return p.PublicationType == nil || p.Country == nil || p.FoundedYear == nil ||
		p.CeasedYear == nil || p.WikipediaURL == nil || p.Bio == nil
}
