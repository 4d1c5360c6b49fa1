package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://trackapi.nutritionix.com"
	naturalNutrientsPath = "/v2/natural/nutrients"
	defaultTimeout       = 20 * time.Second
)

// Food is one candidate record from the natural-nutrients endpoint.
// Macro fields the provider omits or nulls decode to zero. The tag id
// arrives as a string or a number depending on the food, so it is carried
// opaquely.
type Food struct {
	FoodName          string  `json:"food_name"`
	TagID             any     `json:"tag_id"`
	ServingQty        float64 `json:"serving_qty"`
	ServingUnit       string  `json:"serving_unit"`
	Calories          float64 `json:"nf_calories"`
	TotalCarbohydrate float64 `json:"nf_total_carbohydrate"`
	Protein           float64 `json:"nf_protein"`
	TotalFat          float64 `json:"nf_total_fat"`
	DietaryFiber      float64 `json:"nf_dietary_fiber"`
	Sugars            float64 `json:"nf_sugars"`
	Sodium            float64 `json:"nf_sodium"`
}

type nutrientsResponse struct {
	Foods []Food `json:"foods"`
}

type Client struct {
	AppID      string
	AppKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient fails when either credential is missing; the resolver cannot
// exist without them.
func NewClient(appID, appKey string) (*Client, error) {
	if strings.TrimSpace(appID) == "" || strings.TrimSpace(appKey) == "" {
		return nil, fmt.Errorf("nutritionix credentials missing: set NUTRITIONIX_APP_ID and NUTRITIONIX_APP_KEY")
	}
	return &Client{AppID: appID, AppKey: appKey}, nil
}

// NaturalNutrients issues one batched natural-language query and returns
// the candidate foods plus the raw response body.
func (c *Client) NaturalNutrients(ctx context.Context, query string) ([]Food, []byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, nil, fmt.Errorf("encode nutritionix request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+naturalNutrientsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("create nutritionix request: %w", err)
	}
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.AppKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute nutritionix request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read nutritionix response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, body, fmt.Errorf("nutritionix request failed with status %d", resp.StatusCode)
	}

	foods, err := ParseFoods(body)
	if err != nil {
		return nil, body, err
	}
	return foods, body, nil
}

// ParseFoods decodes a natural-nutrients response body. Shared with the
// cache path, which replays stored bodies.
func ParseFoods(raw []byte) ([]Food, error) {
	var parsed nutrientsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode nutritionix response: %w", err)
	}
	return parsed.Foods, nil
}
