package fitaura

import (
	"database/sql"
	"log/slog"

	"github.com/fitaura/fitaura-cli/internal/config"
	"github.com/fitaura/fitaura-cli/internal/provider/nutritionix"
	"github.com/fitaura/fitaura-cli/internal/provider/openai"
	"github.com/fitaura/fitaura-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	logsPath     string
	profilesPath string
	outputPath   string
	uploadsDir   string
	noCache      bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Process the most recent log record and merge the enriched result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		deps := service.RunDeps{}
		if cfg.HasOpenAI() {
			oc, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
			if err != nil {
				return err
			}
			deps.Transcriber = oc
			deps.Pipeline = oc
		}
		if cfg.HasNutritionix() {
			nx, err := nutritionix.NewClient(cfg.NutritionixAppID, cfg.NutritionixAppKey)
			if err != nil {
				slog.Warn("nutritionix not initialized; food enrichment degraded", "error", err)
			} else {
				deps.Nutrition = nx
			}
		} else {
			slog.Warn("nutritionix credentials not set; food items will pass through unenriched")
		}

		in := service.RunInput{
			LogsPath:     logsPath,
			ProfilesPath: profilesPath,
			OutputPath:   outputPath,
			UploadsDir:   uploadsDir,
		}
		if noCache || deps.Nutrition == nil {
			return service.Run(cmd.Context(), in, deps)
		}
		return withCacheDB(func(sqldb *sql.DB) error {
			deps.Cache = sqldb
			return service.Run(cmd.Context(), in, deps)
		})
	},
}

func init() {
	enrichCmd.Flags().StringVar(&logsPath, "logs", "", "Path to the logs file (JSON object keyed by log id)")
	enrichCmd.Flags().StringVar(&profilesPath, "profiles", "", "Path to the profiles file (JSON object keyed by user id)")
	enrichCmd.Flags().StringVar(&outputPath, "output", "", "Path to the output log file (JSON object keyed by record id)")
	enrichCmd.Flags().StringVar(&uploadsDir, "uploads-dir", ".", "Base directory where audio files are stored")
	enrichCmd.Flags().BoolVar(&noCache, "no-cache", false, "Disable the nutrition lookup cache")
	_ = enrichCmd.MarkFlagRequired("logs")
	_ = enrichCmd.MarkFlagRequired("profiles")
	_ = enrichCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(enrichCmd)
}
