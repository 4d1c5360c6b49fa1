package service

import (
	"context"
	"database/sql"

	"github.com/fitaura/fitaura-cli/internal/model"
)

// EnrichPayload applies the calculators to a deep copy of the payload, so
// the caller's structure is never mutated. Exercise logs are always
// enriched; food logs only when a nutrition provider is available — a nil
// provider leaves them unchanged so offline runs still complete. Unknown
// log types pass through untouched. A provider failure aborts the whole
// enrichment.
func EnrichPayload(ctx context.Context, payload model.Payload, profile model.Profile, provider NutritionProvider, cache *sql.DB) (model.Payload, error) {
	out := payload.Clone()
	for i := range out.ProposedLogs {
		log := &out.ProposedLogs[i]
		switch log.Type {
		case model.LogTypeExercise:
			log.Items = EnrichExerciseItems(log.Items, profile)
		case model.LogTypeFood:
			if provider == nil {
				continue
			}
			items, err := ResolveFoodMacros(ctx, provider, cache, log.Items)
			if err != nil {
				return model.Payload{}, err
			}
			log.Items = items
		}
	}
	return out, nil
}
