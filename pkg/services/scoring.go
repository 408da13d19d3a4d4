package services

import (
	"strings"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

// Scoring weights. The negative-keyword penalty is large enough to dominate
// every positive signal in practice, but it stays a weight rather than a hard
// veto so scores remain transparent and individually testable.
const (
	scoreExactTitle      = 100
	scoreSubstringTitle  = 50
	scoreTitleKeyword    = 30
	scoreExtractKeyword  = 15
	scoreExtractCap      = 45
	scoreOrgKeyword      = 10
	scoreNegativeKeyword = -200
	minAcceptableScore   = 0
	disambiguationMarker = "(disambiguation)"
)

// positiveKeywords signal that a candidate page is about the expected role.
var positiveKeywords = map[models.EntityKind][]string{
	models.KindArtist: {
		"artist", "illustrator", "painter", "lithographer", "poster",
		"designer", "engraver", "printmaker", "caricaturist", "graphic",
	},
	models.KindPrinter: {
		"lithograph", "printing company", "printing house", "printer",
		"imprimerie", "press",
	},
	models.KindPublisher: {
		"magazine", "newspaper", "journal", "publisher", "publishing",
		"periodical",
	},
}

// organizationKeywords cover studios and agencies rather than individuals;
// a hit counts as a profession match.
var organizationKeywords = []string{
	"agency", "studio", "inc", "llc", "corp", "company",
}

// negativeKeywords indicate a wrong-profession page: a same-named scientist,
// politician, athlete, officer or academic rather than a poster-world entity.
var negativeKeywords = []string{
	"physicist", "astronomer", "astrophysicist", "chemist", "biologist",
	"mathematician", "scientist", "economist", "philosopher",
	"politician", "senator", "congressman", "governor", "diplomat",
	"minister of",
	"footballer", "athlete", "basketball", "baseball", "cricketer",
	"olympic", "racing driver",
	"general", "colonel", "admiral", "lieutenant", "military officer",
	"professor of", "theologian", "linguist", "surgeon", "physician",
}

// scoredCandidate is one search result after scoring.
type scoredCandidate struct {
	Title           string
	URL             string
	Description     string
	Score           int
	ProfessionMatch bool
}

// scoreCandidate scores a single search result against the looked-up name and
// expected kind. Acceptance requires both a non-negative score and a
// profession match; name similarity alone is never sufficient.
func scoreCandidate(name, title, description string, kind models.EntityKind) scoredCandidate {
	c := scoredCandidate{Title: title, Description: description}

	lowerName := strings.ToLower(strings.TrimSpace(name))
	lowerTitle := strings.ToLower(title)
	lowerDesc := strings.ToLower(description)

	switch {
	case lowerTitle == lowerName:
		c.Score += scoreExactTitle
	case strings.Contains(lowerTitle, lowerName) || strings.Contains(lowerName, lowerTitle):
		c.Score += scoreSubstringTitle
	}

	extractHits := 0
	for _, keyword := range positiveKeywords[kind] {
		if strings.Contains(lowerTitle, keyword) {
			c.Score += scoreTitleKeyword
			c.ProfessionMatch = true
			break
		}
	}
	for _, keyword := range positiveKeywords[kind] {
		if strings.Contains(lowerDesc, keyword) {
			extractHits++
			c.ProfessionMatch = true
		}
	}
	extractScore := extractHits * scoreExtractKeyword
	if extractScore > scoreExtractCap {
		extractScore = scoreExtractCap
	}
	c.Score += extractScore

	for _, keyword := range organizationKeywords {
		if strings.Contains(lowerTitle, keyword) || strings.Contains(lowerDesc, keyword) {
			c.Score += scoreOrgKeyword
			c.ProfessionMatch = true
			break
		}
	}

	if containsNegativeKeyword(lowerDesc) {
		c.Score += scoreNegativeKeyword
	}

	return c
}

// Acceptable reports whether the candidate passes the dual gate.
func (c *scoredCandidate) Acceptable() bool {
	return c.Score >= minAcceptableScore && c.ProfessionMatch
}

// containsNegativeKeyword reports whether text carries a wrong-profession
// indicator. Also used to classify stored bios as suspicious.
func containsNegativeKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range negativeKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// isDisambiguation reports whether a title names a disambiguation page; those
// are never selected regardless of score.
func isDisambiguation(title string) bool {
	return strings.Contains(strings.ToLower(title), disambiguationMarker)
}
