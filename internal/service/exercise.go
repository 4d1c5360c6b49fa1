package service

import (
	"math"
	"strings"

	"github.com/fitaura/fitaura-cli/internal/model"
)

// Baseline MET values per activity. Unlisted activities fall back to a
// general-moderate 4.0.
var baseMET = map[string]float64{
	"running":         9.8,
	"walking":         3.5,
	"cycling":         7.5,
	"swimming":        8.0,
	"rowing":          7.0,
	"yoga":            3.0,
	"hiit":            10.0,
	"hiking":          6.0,
	"elliptical":      5.0,
	"weight training": 6.0,
}

const fallbackMET = 4.0

var effortMultiplier = map[string]float64{
	"easy":     0.8,
	"moderate": 1.0,
	"vigorous": 1.2,
	"max":      1.35,
}

// EnrichExerciseItems attaches the effective MET and estimated calories
// burned to each exercise item. Every input maps to a numeric result via
// defaulting; there are no error conditions.
func EnrichExerciseItems(items []model.Item, profile model.Profile) []model.Item {
	weight := profile.WeightKg()
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		ex, ok := it.(model.ExerciseItem)
		if !ok {
			out = append(out, it.Clone())
			continue
		}
		met := effectiveMET(ex.Activity, ex.EffortLevel)
		calories := caloriesFromMET(met, weight, ex.DurationMin)
		out = append(out, model.EnrichedExerciseItem{
			ExerciseItem:   ex,
			MET:            round(met, 2),
			CaloriesBurned: round(calories, 1),
		})
	}
	return out
}

func effectiveMET(activity, effortLevel string) float64 {
	base, ok := baseMET[strings.ToLower(activity)]
	if !ok {
		base = fallbackMET
	}
	effort := strings.ToLower(effortLevel)
	if effort == "" {
		effort = "moderate"
	}
	mult, ok := effortMultiplier[effort]
	if !ok {
		mult = 1.0
	}
	return base * mult
}

func caloriesFromMET(met, weightKg, durationMin float64) float64 {
	hours := math.Max(0, durationMin) / 60.0
	return met * weightKg * hours
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
