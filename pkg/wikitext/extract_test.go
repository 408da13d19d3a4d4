package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

const artistWikitext = `{{Infobox artist
| name = Paul Colin
| birth_date = {{birth date|1892|6|27}}
| death_date = {{death date and age|1985|6|18|1892|6|27}}
| nationality = [[France|French]]
}}
'''Paul Colin''' was a French poster artist.`

const printerWikitext = `{{Infobox company
| name = Imprimerie Chaix
| location = [[Paris]]
| country = France
| founded = 1845
| defunct = 1970
}}`

const publisherWikitext = `{{Infobox magazine
| title = Le Rire
| category = Humor magazine
| frequency = Weekly
| country = France
| firstdate = October 1894
| finaldate = 1971
}}`

func TestExtractFields(t *testing.T) {
	t.Run("artist from infobox", func(t *testing.T) {
		fields := ExtractFields(artistWikitext, "", models.KindArtist)

		require.NotNil(t, fields.Nationality)
		assert.Equal(t, "French", *fields.Nationality)
		require.NotNil(t, fields.BirthYear)
		assert.Equal(t, 1892, *fields.BirthYear)
		require.NotNil(t, fields.DeathYear)
		assert.Equal(t, 1985, *fields.DeathYear)
	})

	t.Run("artist life span from free text", func(t *testing.T) {
		extract := "Leonetto Cappiello (1875–1942) was an Italian poster artist."

		fields := ExtractFields("no infobox here", extract, models.KindArtist)

		require.NotNil(t, fields.BirthYear)
		assert.Equal(t, 1875, *fields.BirthYear)
		require.NotNil(t, fields.DeathYear)
		assert.Equal(t, 1942, *fields.DeathYear)
	})

	t.Run("infobox years win over free text", func(t *testing.T) {
		extract := "Paul Colin (1800–1900) was a French poster artist."

		fields := ExtractFields(artistWikitext, extract, models.KindArtist)

		require.NotNil(t, fields.BirthYear)
		assert.Equal(t, 1892, *fields.BirthYear)
	})

	t.Run("printer from infobox", func(t *testing.T) {
		fields := ExtractFields(printerWikitext, "", models.KindPrinter)

		require.NotNil(t, fields.Location)
		assert.Equal(t, "Paris", *fields.Location)
		require.NotNil(t, fields.Country)
		assert.Equal(t, "France", *fields.Country)
		require.NotNil(t, fields.FoundedYear)
		assert.Equal(t, 1845, *fields.FoundedYear)
		require.NotNil(t, fields.ClosedYear)
		assert.Equal(t, 1970, *fields.ClosedYear)
	})

	t.Run("printer founded year from free text", func(t *testing.T) {
		extract := "Imprimerie Courmont Freres was founded in Paris in 1885 and printed lithographs."

		fields := ExtractFields("", extract, models.KindPrinter)

		require.NotNil(t, fields.FoundedYear)
		assert.Equal(t, 1885, *fields.FoundedYear)
	})

	t.Run("publisher from infobox", func(t *testing.T) {
		fields := ExtractFields(publisherWikitext, "", models.KindPublisher)

		require.NotNil(t, fields.PublicationType)
		assert.Equal(t, "Humor magazine", *fields.PublicationType)
		require.NotNil(t, fields.Country)
		assert.Equal(t, "France", *fields.Country)
		require.NotNil(t, fields.FoundedYear)
		assert.Equal(t, 1894, *fields.FoundedYear)
		require.NotNil(t, fields.CeasedYear)
		assert.Equal(t, 1971, *fields.CeasedYear)
	})

	t.Run("implausible years are ignored", func(t *testing.T) {
		wikitext := `{{Infobox company
| founded = 1312
}}`

		fields := ExtractFields(wikitext, "", models.KindPrinter)

		assert.Nil(t, fields.FoundedYear)
	})

	t.Run("nothing extracted yields empty fields", func(t *testing.T) {
		fields := ExtractFields("", "No usable data here.", models.KindArtist)
		assert.True(t, fields.Empty())
	})
}
