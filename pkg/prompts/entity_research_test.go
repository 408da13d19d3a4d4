package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

func TestBuildResearchPrompt(t *testing.T) {
	t.Run("artist prompt constrains profession and schema", func(t *testing.T) {
		prompt := BuildResearchPrompt("Paul Colin", models.KindArtist)

		assert.Contains(t, prompt, `"Paul Colin"`)
		assert.Contains(t, prompt, "poster art")
		assert.Contains(t, prompt, `"nationality"`)
		assert.Contains(t, prompt, `"birth_year"`)
		assert.Contains(t, prompt, `"death_year"`)
		assert.Contains(t, prompt, `"bio"`)
		assert.NotContains(t, prompt, `"founded_year"`)
	})

	t.Run("printer prompt uses company schema", func(t *testing.T) {
		prompt := BuildResearchPrompt("Imprimerie Chaix", models.KindPrinter)

		assert.Contains(t, prompt, `"Imprimerie Chaix"`)
		assert.Contains(t, prompt, `"location"`)
		assert.Contains(t, prompt, `"founded_year"`)
		assert.Contains(t, prompt, `"closed_year"`)
		assert.NotContains(t, prompt, `"birth_year"`)
	})

	t.Run("publisher prompt uses publication schema", func(t *testing.T) {
		prompt := BuildResearchPrompt("Le Rire", models.KindPublisher)

		assert.Contains(t, prompt, `"Le Rire"`)
		assert.Contains(t, prompt, `"publication_type"`)
		assert.Contains(t, prompt, `"ceased_year"`)
	})
}
