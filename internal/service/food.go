package service

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/fitaura/fitaura-cli/internal/model"
	"github.com/fitaura/fitaura-cli/internal/provider/nutritionix"
)

const foodProviderName = "Nutritionix"

// NutritionProvider answers one combined natural-language nutrition query
// with candidate food records plus the raw response body for caching.
type NutritionProvider interface {
	NaturalNutrients(ctx context.Context, query string) ([]nutritionix.Food, []byte, error)
}

// ResolveFoodMacros enriches the food items among the given log items with
// macros from one batched provider lookup. Non-food items pass through
// unchanged. A provider failure propagates; it is not recovered here.
func ResolveFoodMacros(ctx context.Context, provider NutritionProvider, cache *sql.DB, items []model.Item) ([]model.Item, error) {
	foodItems := make([]model.FoodItem, 0, len(items))
	for _, it := range items {
		if f, ok := it.(model.FoodItem); ok {
			foodItems = append(foodItems, f)
		}
	}
	if len(foodItems) == 0 {
		out := make([]model.Item, 0, len(items))
		for _, it := range items {
			out = append(out, it.Clone())
		}
		return out, nil
	}

	query := ComposeFoodQuery(foodItems)
	foods, err := fetchFoods(ctx, provider, cache, query)
	if err != nil {
		return nil, err
	}

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		f, ok := it.(model.FoodItem)
		if !ok {
			out = append(out, it.Clone())
			continue
		}
		enriched := model.EnrichedFoodItem{
			FoodItem:  f,
			SourceRef: model.SourceRef{Provider: foodProviderName},
		}
		if match, found := bestFoodMatch(f, foods); found {
			enriched.Macros = macrosFromFood(match)
			enriched.SourceRef.ID = match.TagID
		}
		out = append(out, enriched)
	}
	return out, nil
}

func fetchFoods(ctx context.Context, provider NutritionProvider, cache *sql.DB, query string) ([]nutritionix.Food, error) {
	if cache != nil {
		raw, hit, err := lookupCachedFoods(cache, foodProviderName, query)
		if err != nil {
			return nil, err
		}
		if hit {
			foods, err := nutritionix.ParseFoods(raw)
			if err == nil {
				return foods, nil
			}
			// Unreadable cache rows fall through to a live lookup.
		}
	}
	foods, raw, err := provider.NaturalNutrients(ctx, query)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		if err := storeCachedFoods(cache, foodProviderName, query, raw); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// ComposeFoodQuery joins one natural-language sub-query per item with the
// literal connector " and ". A "count" unit (or none) is left out of the
// sub-query; whole quantities render without a decimal point.
func ComposeFoodQuery(items []model.FoodItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if q := composeItemQuery(it); q != "" {
			parts = append(parts, q)
		}
	}
	return strings.Join(parts, " and ")
}

func composeItemQuery(it model.FoodItem) string {
	name := strings.TrimSpace(it.Name)
	unit := strings.TrimSpace(it.Unit)
	if unit == "" || unit == "count" {
		if it.Quantity > 0 {
			return strings.TrimSpace(renderQuantity(it.Quantity) + " " + name)
		}
		return name
	}
	if it.Quantity > 0 {
		return strings.TrimSpace(renderQuantity(it.Quantity) + " " + unit + " " + name)
	}
	return strings.TrimSpace(unit + " " + name)
}

func renderQuantity(q float64) string {
	if q == float64(int64(q)) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strconv.FormatFloat(q, 'g', -1, 64)
}

// bestFoodMatch picks the provider candidate for one item: exact
// case-insensitive name match first, then a candidate whose name starts
// with the item's first token, then the provider's first candidate.
func bestFoodMatch(item model.FoodItem, foods []nutritionix.Food) (nutritionix.Food, bool) {
	if len(foods) == 0 {
		return nutritionix.Food{}, false
	}
	target := strings.ToLower(strings.TrimSpace(item.Name))
	for _, f := range foods {
		if strings.ToLower(f.FoodName) == target {
			return f, true
		}
	}
	if fields := strings.Fields(target); len(fields) > 0 {
		for _, f := range foods {
			if strings.HasPrefix(strings.ToLower(f.FoodName), fields[0]) {
				return f, true
			}
		}
	}
	return foods[0], true
}

// macrosFromFood maps the provider's nf_* fields onto the canonical macro
// set. Fields the candidate omits are already zero-valued.
func macrosFromFood(f nutritionix.Food) *model.Macros {
	return &model.Macros{
		Calories: f.Calories,
		CarbsG:   f.TotalCarbohydrate,
		ProteinG: f.Protein,
		FatG:     f.TotalFat,
		FiberG:   f.DietaryFiber,
		SugarG:   f.Sugars,
		SodiumMg: f.Sodium,
	}
}
