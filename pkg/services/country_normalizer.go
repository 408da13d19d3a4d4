package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/repositories"
)

// countryCodes maps lowercased historical and modern country spellings to an
// ISO-like 2-letter code. Aliases that share a code share a stored row, so a
// country is never duplicated under a spelling it has already seen.
var countryCodes = map[string]string{
	"usa": "US", "u.s.a.": "US", "u.s.": "US", "us": "US",
	"united states": "US", "united states of america": "US", "america": "US",
	"uk": "GB", "u.k.": "GB", "united kingdom": "GB", "great britain": "GB",
	"britain": "GB", "england": "GB", "scotland": "GB", "wales": "GB",
	"ussr": "SU", "u.s.s.r.": "SU", "soviet union": "SU", "soviet russia": "SU",
	"russia": "RU", "russian federation": "RU", "russian empire": "RU",
	"france": "FR", "french republic": "FR",
	"germany": "DE", "west germany": "DE", "east germany": "DE",
	"german empire": "DE", "weimar republic": "DE",
	"italy": "IT", "kingdom of italy": "IT",
	"spain": "ES", "netherlands": "NL", "holland": "NL",
	"belgium": "BE", "switzerland": "CH", "austria": "AT",
	"austria-hungary": "AT", "hungary": "HU", "poland": "PL",
	"czechoslovakia": "CS", "czech republic": "CZ", "czechia": "CZ",
	"slovakia": "SK", "yugoslavia": "YU", "serbia": "RS", "croatia": "HR",
	"denmark": "DK", "sweden": "SE", "norway": "NO", "finland": "FI",
	"portugal": "PT", "greece": "GR", "ireland": "IE", "romania": "RO",
	"bulgaria": "BG", "ukraine": "UA",
	"japan": "JP", "china": "CN", "india": "IN",
	"canada": "CA", "mexico": "MX", "brazil": "BR", "argentina": "AR",
	"cuba": "CU", "australia": "AU", "new zealand": "NZ",
	"turkey": "TR", "ottoman empire": "TR", "egypt": "EG", "israel": "IL",
	"south africa": "ZA", "monaco": "MC", "luxembourg": "LU",
}

// CountryNormalizer canonicalizes free-text country names against the managed
// country list. Normalization is strictly best-effort: storage failures are
// logged and the trimmed input is returned so enrichment never blocks here.
type CountryNormalizer interface {
	Normalize(ctx context.Context, freeText string) string
}

type countryNormalizer struct {
	countries repositories.CountryRepository
	logger    *zap.Logger
}

// NewCountryNormalizer creates a new CountryNormalizer.
func NewCountryNormalizer(countries repositories.CountryRepository, logger *zap.Logger) CountryNormalizer {
	return &countryNormalizer{
		countries: countries,
		logger:    logger.Named("country-normalizer"),
	}
}

var _ CountryNormalizer = (*countryNormalizer)(nil)

func (n *countryNormalizer) Normalize(ctx context.Context, freeText string) string {
	trimmed := strings.TrimSpace(freeText)
	if trimmed == "" {
		return ""
	}

	code := countryCodes[strings.ToLower(trimmed)]

	existing, err := n.countries.FindByNameOrCode(ctx, trimmed, code)
	if err == nil {
		return existing.Name
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		n.logger.Warn("Country lookup failed", zap.String("country", trimmed), zap.Error(err))
		return trimmed
	}

	country := &models.Country{Name: trimmed}
	if code != "" {
		country.Code = &code
	}

	if err := n.countries.Create(ctx, country); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost a concurrent create; the stored row wins.
			if winner, lookupErr := n.countries.FindByNameOrCode(ctx, trimmed, code); lookupErr == nil {
				return winner.Name
			}
		}
		n.logger.Warn("Country create failed", zap.String("country", trimmed), zap.Error(err))
	}

	return trimmed
}
