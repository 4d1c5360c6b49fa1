package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the credentials and model selection read from the
// environment. Absent credentials are not an error here; the command layer
// decides which absences are fatal and which degrade.
type Config struct {
	NutritionixAppID  string `env:"NUTRITIONIX_APP_ID"`
	NutritionixAppKey string `env:"NUTRITIONIX_APP_KEY"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIModel       string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) HasNutritionix() bool {
	return c.NutritionixAppID != "" && c.NutritionixAppKey != ""
}

func (c Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
