package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fitaura/fitaura-cli/internal/model"
	"github.com/fitaura/fitaura-cli/internal/provider/nutritionix"
	"github.com/fitaura/fitaura-cli/internal/service"
)

type fakeNutrition struct {
	foods   []nutritionix.Food
	raw     []byte
	err     error
	queries []string
}

func (f *fakeNutrition) NaturalNutrients(ctx context.Context, query string) ([]nutritionix.Food, []byte, error) {
	f.queries = append(f.queries, query)
	return f.foods, f.raw, f.err
}

func TestComposeFoodQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		items []model.FoodItem
		want  string
	}{
		{
			name:  "count unit drops the unit",
			items: []model.FoodItem{{Name: "banana", Quantity: 2, Unit: "count"}},
			want:  "2 banana",
		},
		{
			name:  "empty unit drops the unit",
			items: []model.FoodItem{{Name: "egg", Quantity: 3}},
			want:  "3 egg",
		},
		{
			name:  "missing quantity emits name alone",
			items: []model.FoodItem{{Name: "banana", Unit: "count"}},
			want:  "banana",
		},
		{
			name:  "explicit unit included",
			items: []model.FoodItem{{Name: "rice", Quantity: 200, Unit: "g"}},
			want:  "200 g rice",
		},
		{
			name:  "fractional quantity keeps decimals",
			items: []model.FoodItem{{Name: "milk", Quantity: 1.5, Unit: "cup"}},
			want:  "1.5 cup milk",
		},
		{
			name: "items joined with and",
			items: []model.FoodItem{
				{Name: "banana", Quantity: 2, Unit: "count"},
				{Name: "oatmeal", Quantity: 1, Unit: "cup"},
			},
			want: "2 banana and 1 cup oatmeal",
		},
		{
			name: "empty sub-queries are skipped",
			items: []model.FoodItem{
				{Name: ""},
				{Name: "toast", Quantity: 1, Unit: "count"},
			},
			want: "1 toast",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := service.ComposeFoodQuery(tc.items); got != tc.want {
				t.Fatalf("expected query %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveFoodMacrosMatchingPriority(t *testing.T) {
	t.Parallel()

	provider := &fakeNutrition{foods: []nutritionix.Food{
		{FoodName: "banana bread", TagID: "7", Calories: 326},
		{FoodName: "banana", TagID: "384", Calories: 105, TotalCarbohydrate: 27, Protein: 1.3, TotalFat: 0.4},
		{FoodName: "oatmeal", TagID: "12", Calories: 158},
	}}

	items, err := service.ResolveFoodMacros(context.Background(), provider, nil, []model.Item{
		model.FoodItem{Name: "Banana", Quantity: 2, Unit: "count"},
		model.FoodItem{Name: "oatmeal porridge", Quantity: 1, Unit: "cup"},
		model.FoodItem{Name: "mystery dish", Quantity: 1, Unit: "count"},
	})
	if err != nil {
		t.Fatalf("resolve food macros: %v", err)
	}

	// Exact match, case-insensitive.
	exact := items[0].(model.EnrichedFoodItem)
	if exact.Macros == nil || exact.Macros.Calories != 105 {
		t.Fatalf("expected exact match on banana, got %+v", exact)
	}
	if exact.SourceRef.Provider != "Nutritionix" || exact.SourceRef.ID != "384" {
		t.Fatalf("unexpected source_ref: %+v", exact.SourceRef)
	}

	// Prefix match on the first token.
	prefix := items[1].(model.EnrichedFoodItem)
	if prefix.Macros == nil || prefix.Macros.Calories != 158 {
		t.Fatalf("expected prefix match on oatmeal, got %+v", prefix)
	}

	// Fallback: first candidate.
	fallback := items[2].(model.EnrichedFoodItem)
	if fallback.Macros == nil || fallback.Macros.Calories != 326 {
		t.Fatalf("expected first-candidate fallback, got %+v", fallback)
	}
}

func TestResolveFoodMacrosZeroCandidates(t *testing.T) {
	t.Parallel()

	provider := &fakeNutrition{foods: nil}
	items, err := service.ResolveFoodMacros(context.Background(), provider, nil, []model.Item{
		model.FoodItem{Name: "banana", Quantity: 1, Unit: "count"},
	})
	if err != nil {
		t.Fatalf("resolve food macros: %v", err)
	}

	enriched := items[0].(model.EnrichedFoodItem)
	if enriched.Macros != nil {
		t.Fatalf("expected null macros with no candidates, got %+v", enriched.Macros)
	}
	if enriched.SourceRef.Provider != "Nutritionix" || enriched.SourceRef.ID != nil {
		t.Fatalf("expected source_ref with null id, got %+v", enriched.SourceRef)
	}
}

func TestResolveFoodMacrosMissingFieldsDefaultToZero(t *testing.T) {
	t.Parallel()

	provider := &fakeNutrition{foods: []nutritionix.Food{
		{FoodName: "banana", TagID: "384", Calories: 105},
	}}
	items, err := service.ResolveFoodMacros(context.Background(), provider, nil, []model.Item{
		model.FoodItem{Name: "banana", Quantity: 1, Unit: "count"},
	})
	if err != nil {
		t.Fatalf("resolve food macros: %v", err)
	}

	enriched := items[0].(model.EnrichedFoodItem)
	if enriched.Macros == nil {
		t.Fatal("expected macros for a matched candidate")
	}
	if enriched.Macros.ProteinG != 0 || enriched.Macros.SodiumMg != 0 || enriched.Macros.FiberG != 0 {
		t.Fatalf("expected omitted macro fields to default to zero, got %+v", enriched.Macros)
	}
}

func TestResolveFoodMacrosProviderErrorPropagates(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("nutritionix request failed with status 500")
	provider := &fakeNutrition{err: wantErr}
	_, err := service.ResolveFoodMacros(context.Background(), provider, nil, []model.Item{
		model.FoodItem{Name: "banana", Quantity: 1, Unit: "count"},
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
}

func TestResolveFoodMacrosNoFoodItemsSkipsLookup(t *testing.T) {
	t.Parallel()

	provider := &fakeNutrition{}
	items, err := service.ResolveFoodMacros(context.Background(), provider, nil, []model.Item{
		model.ExerciseItem{Activity: "running", DurationMin: 30},
	})
	if err != nil {
		t.Fatalf("resolve food macros: %v", err)
	}
	if len(provider.queries) != 0 {
		t.Fatalf("expected no provider call without food items, got %d", len(provider.queries))
	}
	if _, ok := items[0].(model.ExerciseItem); !ok {
		t.Fatalf("expected non-food item to pass through, got %T", items[0])
	}
}
