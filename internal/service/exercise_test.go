package service_test

import (
	"testing"

	"github.com/fitaura/fitaura-cli/internal/model"
	"github.com/fitaura/fitaura-cli/internal/service"
)

func floatPtr(v float64) *float64 { return &v }

func TestEnrichExerciseItemsKnownActivity(t *testing.T) {
	t.Parallel()

	profile := model.Profile{UserID: "u1", Weight: floatPtr(70)}
	items := service.EnrichExerciseItems([]model.Item{
		model.ExerciseItem{Activity: "running", DurationMin: 30, EffortLevel: "moderate"},
	}, profile)

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	ex, ok := items[0].(model.EnrichedExerciseItem)
	if !ok {
		t.Fatalf("expected enriched exercise item, got %T", items[0])
	}
	if ex.MET != 9.8 {
		t.Fatalf("expected met 9.8, got %v", ex.MET)
	}
	if ex.CaloriesBurned != 343.0 {
		t.Fatalf("expected 343.0 calories, got %v", ex.CaloriesBurned)
	}
}

func TestEnrichExerciseItemsUnknownActivityAndEffort(t *testing.T) {
	t.Parallel()

	profile := model.Profile{UserID: "u1", Weight: floatPtr(80)}
	items := service.EnrichExerciseItems([]model.Item{
		model.ExerciseItem{Activity: "unknownsport", DurationMin: 10, EffortLevel: "vigorous"},
		model.ExerciseItem{Activity: "juggling", DurationMin: 60, EffortLevel: "extreme"},
	}, profile)

	first := items[0].(model.EnrichedExerciseItem)
	if first.MET != 4.8 {
		t.Fatalf("expected fallback met 4.8, got %v", first.MET)
	}
	if first.CaloriesBurned != 64.0 {
		t.Fatalf("expected 64.0 calories, got %v", first.CaloriesBurned)
	}

	second := items[1].(model.EnrichedExerciseItem)
	if second.MET != 4.0 {
		t.Fatalf("expected unrecognized effort to use multiplier 1.0, got met %v", second.MET)
	}
}

func TestEnrichExerciseItemsDefaultsAndClamps(t *testing.T) {
	t.Parallel()

	// No weight in the profile: default 70kg. Missing effort: moderate.
	// Negative duration: floored at zero.
	items := service.EnrichExerciseItems([]model.Item{
		model.ExerciseItem{Activity: "walking", DurationMin: 60},
		model.ExerciseItem{Activity: "cycling", DurationMin: -15, EffortLevel: "easy"},
	}, model.Profile{UserID: "u1"})

	walk := items[0].(model.EnrichedExerciseItem)
	if walk.MET != 3.5 || walk.CaloriesBurned != 245.0 {
		t.Fatalf("unexpected walking enrichment: %+v", walk)
	}

	ride := items[1].(model.EnrichedExerciseItem)
	if ride.CaloriesBurned != 0 {
		t.Fatalf("expected negative duration to burn 0 calories, got %v", ride.CaloriesBurned)
	}
	if ride.MET != 6.0 {
		t.Fatalf("expected met 7.5*0.8=6.0, got %v", ride.MET)
	}
}

func TestEnrichExerciseItemsEffortRounding(t *testing.T) {
	t.Parallel()

	profile := model.Profile{UserID: "u1", Weight: floatPtr(70)}
	items := service.EnrichExerciseItems([]model.Item{
		model.ExerciseItem{Activity: "running", DurationMin: 30, EffortLevel: "max"},
	}, profile)

	ex := items[0].(model.EnrichedExerciseItem)
	if ex.MET != 13.23 {
		t.Fatalf("expected met 9.8*1.35=13.23, got %v", ex.MET)
	}
	// 13.23 met before rounding is 13.23; calories 13.23*70*0.5=463.05 -> 463.1
	if ex.CaloriesBurned != 463.1 {
		t.Fatalf("expected 463.1 calories, got %v", ex.CaloriesBurned)
	}
}

func TestEnrichExerciseItemsPassesThroughNonExerciseItems(t *testing.T) {
	t.Parallel()

	items := service.EnrichExerciseItems([]model.Item{
		model.FoodItem{Name: "banana", Quantity: 1, Unit: "count"},
	}, model.Profile{UserID: "u1"})

	if _, ok := items[0].(model.FoodItem); !ok {
		t.Fatalf("expected non-exercise item to pass through, got %T", items[0])
	}
}
