package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/affiche-works/affiche-engine/pkg/llm"
	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/prompts"
)

// Researcher asks the LLM for structured fields when the encyclopedia yields
// nothing usable. A nil result means the fallback produced nothing; parse
// errors, missing credentials and empty responses never surface as errors.
type Researcher interface {
	Research(ctx context.Context, name string, kind models.EntityKind) *models.ResearchResult
}

type researcher struct {
	client      llm.LLMClient
	temperature float64
	logger      *zap.Logger
}

// NewResearcher creates a new Researcher. client may be nil, which disables
// the fallback entirely.
func NewResearcher(client llm.LLMClient, temperature float64, logger *zap.Logger) Researcher {
	return &researcher{
		client:      client,
		temperature: temperature,
		logger:      logger.Named("researcher"),
	}
}

var _ Researcher = (*researcher)(nil)

// researchPayload is the wire schema the prompt demands. One struct covers
// all kinds; the prompt constrains which fields the model may fill.
type researchPayload struct {
	Nationality     *string `json:"nationality"`
	BirthYear       *int    `json:"birth_year"`
	DeathYear       *int    `json:"death_year"`
	Location        *string `json:"location"`
	Country         *string `json:"country"`
	FoundedYear     *int    `json:"founded_year"`
	ClosedYear      *int    `json:"closed_year"`
	CeasedYear      *int    `json:"ceased_year"`
	PublicationType *string `json:"publication_type"`
	Bio             *string `json:"bio"`
}

func (r *researcher) Research(ctx context.Context, name string, kind models.EntityKind) *models.ResearchResult {
	if r.client == nil {
		return nil
	}

	prompt := prompts.BuildResearchPrompt(name, kind)

	response, err := r.client.GenerateResponse(ctx, prompt, prompts.ResearchSystemMessage, r.temperature)
	if err != nil {
		r.logger.Warn("LLM research failed", zap.String("name", name), zap.Error(err))
		return nil
	}
	if response == "" {
		return nil
	}

	payload, err := llm.ParseJSONResponse[researchPayload](response)
	if err != nil {
		r.logger.Warn("LLM response was not parseable JSON",
			zap.String("name", name),
			zap.Error(err))
		return nil
	}

	result := &models.ResearchResult{Bio: payload.Bio}
	switch kind {
	case models.KindArtist:
		result.Fields.Nationality = payload.Nationality
		result.Fields.BirthYear = payload.BirthYear
		result.Fields.DeathYear = payload.DeathYear
	case models.KindPrinter:
		result.Fields.Location = payload.Location
		result.Fields.Country = payload.Country
		result.Fields.FoundedYear = payload.FoundedYear
		result.Fields.ClosedYear = payload.ClosedYear
	case models.KindPublisher:
		result.Fields.PublicationType = payload.PublicationType
		result.Fields.Country = payload.Country
		result.Fields.FoundedYear = payload.FoundedYear
		result.Fields.CeasedYear = payload.CeasedYear
	}

	if result.Fields.Empty() && result.Bio == nil {
		return nil
	}

	r.logger.Info("LLM research produced fields",
		zap.String("name", name),
		zap.String("kind", string(kind)))

	return result
}
