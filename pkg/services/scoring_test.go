package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

func TestScoreCandidate(t *testing.T) {
	t.Run("exact title with profession keyword", func(t *testing.T) {
		c := scoreCandidate("Paul Colin", "Paul Colin",
			"French poster artist and illustrator", models.KindArtist)

		// 100 exact title + 2 extract keyword hits (poster only counts once
		// per keyword list entry: artist, illustrator, poster = 3 hits capped at 45)
		assert.Equal(t, 145, c.Score)
		assert.True(t, c.ProfessionMatch)
		assert.True(t, c.Acceptable())
	})

	t.Run("negative keyword sinks a same-named namesake", func(t *testing.T) {
		c := scoreCandidate("Jane Doe", "Jane Doe",
			"American physicist and academic", models.KindArtist)

		assert.Equal(t, -100, c.Score)
		assert.False(t, c.ProfessionMatch)
		assert.False(t, c.Acceptable())
	})

	t.Run("name similarity alone never passes the gate", func(t *testing.T) {
		c := scoreCandidate("Jean Dupont", "Jean Dupont",
			"French writer", models.KindArtist)

		assert.Equal(t, 100, c.Score)
		assert.False(t, c.ProfessionMatch)
		assert.False(t, c.Acceptable())
	})

	t.Run("substring title match", func(t *testing.T) {
		c := scoreCandidate("Chaix", "Imprimerie Chaix",
			"French printing company in Paris", models.KindPrinter)

		// 50 substring + 30 title keyword (imprimerie) + extract hits
		assert.GreaterOrEqual(t, c.Score, 80)
		assert.True(t, c.ProfessionMatch)
		assert.True(t, c.Acceptable())
	})

	t.Run("extract keyword score is capped", func(t *testing.T) {
		c := scoreCandidate("Someone Else", "Unrelated Title",
			"artist illustrator painter lithographer designer engraver", models.KindArtist)

		// 6 hits at 15 each would be 90; the cap keeps it at 45.
		assert.Equal(t, 45, c.Score)
		assert.True(t, c.ProfessionMatch)
	})

	t.Run("organization keyword counts as profession match", func(t *testing.T) {
		c := scoreCandidate("Atelier Moderne", "Atelier Moderne",
			"design studio in Brussels", models.KindArtist)

		assert.True(t, c.ProfessionMatch)
		assert.True(t, c.Acceptable())
	})

	t.Run("publisher keywords apply to publisher kind only", func(t *testing.T) {
		asPublisher := scoreCandidate("Le Rire", "Le Rire",
			"French humor magazine", models.KindPublisher)
		asArtist := scoreCandidate("Le Rire", "Le Rire",
			"French humor magazine", models.KindArtist)

		assert.True(t, asPublisher.ProfessionMatch)
		assert.False(t, asArtist.ProfessionMatch)
	})

	t.Run("negative keyword plus profession keyword still fails on score", func(t *testing.T) {
		c := scoreCandidate("John Smith", "John Smith",
			"politician and amateur painter", models.KindArtist)

		// 100 + 15 - 200: the profession match is true but the score gate fails.
		assert.True(t, c.ProfessionMatch)
		assert.Negative(t, c.Score)
		assert.False(t, c.Acceptable())
	})
}

func TestIsDisambiguation(t *testing.T) {
	assert.True(t, isDisambiguation("Paul Colin (disambiguation)"))
	assert.True(t, isDisambiguation("Paul Colin (Disambiguation)"))
	assert.False(t, isDisambiguation("Paul Colin (artist)"))
}

func TestContainsNegativeKeyword(t *testing.T) {
	assert.True(t, containsNegativeKeyword("A noted German Physicist."))
	assert.True(t, containsNegativeKeyword("professor of chemistry at Yale"))
	assert.False(t, containsNegativeKeyword("A French poster artist."))
	assert.False(t, containsNegativeKeyword(""))
}
