package wikitext

import (
	"regexp"
	"strconv"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

// Plausible infobox keys per target field, in priority order. The first key
// present with a non-empty value wins.
var (
	nationalityKeys = []string{"nationality", "citizenship", "country"}
	birthKeys       = []string{"birth_date", "birth_year", "born"}
	deathKeys       = []string{"death_date", "death_year", "died"}

	locationKeys       = []string{"location", "headquarters", "city", "hq_location", "location_city"}
	entityCountryKeys  = []string{"country", "location_country", "hq_location_country", "based_in"}
	foundedKeys        = []string{"founded", "foundation", "established", "founded_date", "firstdate", "first_issue"}
	printerClosedKeys  = []string{"defunct", "dissolved", "closed", "fate"}
	publisherCeaseKeys = []string{"finaldate", "final_issue", "ceased_publication", "defunct", "dissolved"}
	publicationKeys    = []string{"type", "format", "category", "frequency"}
)

var (
	// Years between 1500 and 2029 are considered plausible for this catalog.
	yearPattern = regexp.MustCompile(`\b(1[5-9]\d{2}|20[0-2]\d)\b`)

	// "(1907–1984)" style life spans in free text.
	lifeSpanPattern = regexp.MustCompile(`\((1[5-9]\d{2}|20[0-2]\d)\s*[–—-]\s*(1[5-9]\d{2}|20[0-2]\d)\)`)

	// "founded in 1885", "established ... 1902" in free text.
	foundedTextPattern = regexp.MustCompile(`(?i)\b(?:founded|established)\b[^.]{0,60}?\b(1[5-9]\d{2}|20[0-2]\d)\b`)
)

// ExtractFields pulls kind-specific structured fields from raw wikitext,
// falling back to regex extraction over the free-text extract where the
// infobox comes up empty.
func ExtractFields(wikitext, extract string, kind models.EntityKind) models.EnrichmentFields {
	box := ParseInfobox(wikitext)

	var fields models.EnrichmentFields
	switch kind {
	case models.KindArtist:
		fields.Nationality = firstValue(box, nationalityKeys)
		fields.BirthYear = firstYear(box, birthKeys)
		fields.DeathYear = firstYear(box, deathKeys)
		if fields.BirthYear == nil && fields.DeathYear == nil {
			fields.BirthYear, fields.DeathYear = lifeSpan(extract)
		}
	case models.KindPrinter:
		fields.Location = firstValue(box, locationKeys)
		fields.Country = firstValue(box, entityCountryKeys)
		fields.FoundedYear = firstYear(box, foundedKeys)
		fields.ClosedYear = firstYear(box, printerClosedKeys)
		if fields.FoundedYear == nil {
			fields.FoundedYear = foundedFromText(extract)
		}
	case models.KindPublisher:
		fields.PublicationType = firstValue(box, publicationKeys)
		fields.Country = firstValue(box, entityCountryKeys)
		fields.FoundedYear = firstYear(box, foundedKeys)
		fields.CeasedYear = firstYear(box, publisherCeaseKeys)
		if fields.FoundedYear == nil {
			fields.FoundedYear = foundedFromText(extract)
		}
	}

	return fields
}

// firstValue returns the first non-empty infobox value among keys.
func firstValue(box map[string]string, keys []string) *string {
	for _, key := range keys {
		if v, ok := box[key]; ok && v != "" {
			return &v
		}
	}
	return nil
}

// firstYear returns a plausible 4-digit year from the first infobox key that
// yields one.
func firstYear(box map[string]string, keys []string) *int {
	for _, key := range keys {
		v, ok := box[key]
		if !ok {
			continue
		}
		if year := yearFrom(v); year != nil {
			return year
		}
	}
	return nil
}

func yearFrom(s string) *int {
	match := yearPattern.FindString(s)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}

func lifeSpan(extract string) (birth, death *int) {
	match := lifeSpanPattern.FindStringSubmatch(extract)
	if match == nil {
		return nil, nil
	}
	b, _ := strconv.Atoi(match[1])
	d, _ := strconv.Atoi(match[2])
	return &b, &d
}

func foundedFromText(extract string) *int {
	match := foundedTextPattern.FindStringSubmatch(extract)
	if match == nil {
		return nil
	}
	year, _ := strconv.Atoi(match[1])
	return &year
}
