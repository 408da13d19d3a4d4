package models

// EnrichmentFields holds structured fields discovered for an entity, from the
// infobox extractor or the LLM researcher. Only the fields relevant to the
// entity's kind are ever populated.
type EnrichmentFields struct {
	Nationality     *string `json:"nationality,omitempty"`
	BirthYear       *int    `json:"birth_year,omitempty"`
	DeathYear       *int    `json:"death_year,omitempty"`
	Location        *string `json:"location,omitempty"`
	Country         *string `json:"country,omitempty"`
	FoundedYear     *int    `json:"founded_year,omitempty"`
	ClosedYear      *int    `json:"closed_year,omitempty"`
	CeasedYear      *int    `json:"ceased_year,omitempty"`
	PublicationType *string `json:"publication_type,omitempty"`
}

// Empty reports whether no structured field was discovered.
func (f *EnrichmentFields) Empty() bool {
	return f.Nationality == nil && f.BirthYear == nil && f.DeathYear == nil &&
		f.Location == nil && f.Country == nil && f.FoundedYear == nil &&
		f.ClosedYear == nil && f.CeasedYear == nil && f.PublicationType == nil
}

// Merge fills any nil field of f from other. Existing values win, so calling
// Merge with LLM results after Wikipedia extraction gives Wikipedia precedence.
func (f *EnrichmentFields) Merge(other *EnrichmentFields) {
	if other == nil {
		return
	}
	if f.Nationality == nil {
		f.Nationality = other.Nationality
	}
	if f.BirthYear == nil {
		f.BirthYear = other.BirthYear
	}
	if f.DeathYear == nil {
		f.DeathYear = other.DeathYear
	}
	if f.Location == nil {
		f.Location = other.Location
	}
	if f.Country == nil {
		f.Country = other.Country
	}
	if f.FoundedYear == nil {
		f.FoundedYear = other.FoundedYear
	}
	if f.ClosedYear == nil {
		f.ClosedYear = other.ClosedYear
	}
	if f.CeasedYear == nil {
		f.CeasedYear = other.CeasedYear
	}
	if f.PublicationType == nil {
		f.PublicationType = other.PublicationType
	}
}

// EnrichmentCandidate is an accepted Wikipedia match: the page plus whatever
// structured fields the infobox/extract parsing yielded.
type EnrichmentCandidate struct {
	Title        string           `json:"title"`
	WikipediaURL string           `json:"wikipedia_url"`
	Description  string           `json:"description"`
	ImageURL     *string          `json:"image_url,omitempty"`
	Fields       EnrichmentFields `json:"fields"`
}

// ResearchResult is what the LLM fallback produced for an entity.
type ResearchResult struct {
	Fields EnrichmentFields `json:"fields"`
	Bio    *string          `json:"bio,omitempty"`
}
