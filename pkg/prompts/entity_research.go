// Package prompts builds the LLM prompts used for fallback entity research.
package prompts

import (
	"fmt"
	"strings"

	"github.com/affiche-works/affiche-engine/pkg/models"
)

// ResearchSystemMessage instructs the model to answer with bare JSON only.
const ResearchSystemMessage = "You are a research assistant for a vintage poster archive. " +
	"Respond with a single JSON object and nothing else. " +
	"Use null for any field you are not certain about. Never guess."

// BuildResearchPrompt creates the single-turn research prompt for a name of
// the given kind. The response schema is fixed per kind; every field allows
// null, plus a one-to-two sentence bio.
func BuildResearchPrompt(name string, kind models.EntityKind) string {
	var prompt strings.Builder

	switch kind {
	case models.KindArtist:
		fmt.Fprintf(&prompt, "Research the poster artist %q.\n\n", name)
		prompt.WriteString("Only provide information about a person known for poster art, illustration, ")
		prompt.WriteString("painting or printmaking. If the name is only known for an unrelated field, ")
		prompt.WriteString("return null for every field.\n\n")
		prompt.WriteString("Return only a JSON object with exactly these fields:\n")
		prompt.WriteString(`{"nationality": string|null, "birth_year": number|null, "death_year": number|null, "bio": string|null}`)
	case models.KindPrinter:
		fmt.Fprintf(&prompt, "Research the printing company %q, a firm that printed posters or lithographs.\n\n", name)
		prompt.WriteString("Return only a JSON object with exactly these fields:\n")
		prompt.WriteString(`{"location": string|null, "country": string|null, "founded_year": number|null, "closed_year": number|null, "bio": string|null}`)
	case models.KindPublisher:
		fmt.Fprintf(&prompt, "Research the publication or publishing house %q.\n\n", name)
		prompt.WriteString("Return only a JSON object with exactly these fields:\n")
		prompt.WriteString(`{"publication_type": string|null, "country": string|null, "founded_year": number|null, "ceased_year": number|null, "bio": string|null}`)
	}

	prompt.WriteString("\n\nThe bio must be one or two sentences.")

	return prompt.String()
}
