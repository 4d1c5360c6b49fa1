package service

import (
	"github.com/fitaura/fitaura-cli/internal/model"
)

// Confidence attached to every proposed log; the upstream parser does not
// report one, so the builder supplies this constant.
const parserConfidence = 0.9

// BuildPayload assembles metadata and parsed entities into the enrichable
// payload: always two proposed logs, exercise first, then food. Item shape
// is not validated here; the calculators default anything missing.
func BuildPayload(metadata model.PayloadMetadata, parsed model.ParsedEntities) model.Payload {
	exercise := make([]model.Item, 0, len(parsed.Exercise.Items))
	for _, it := range parsed.Exercise.Items {
		exercise = append(exercise, it)
	}
	food := make([]model.Item, 0, len(parsed.Food.Items))
	for _, it := range parsed.Food.Items {
		food = append(food, it)
	}
	return model.Payload{
		Metadata: metadata,
		ProposedLogs: []model.ProposedLog{
			{Type: model.LogTypeExercise, Items: exercise, ParserConfidence: parserConfidence},
			{Type: model.LogTypeFood, Items: food, ParserConfidence: parserConfidence},
		},
	}
}
