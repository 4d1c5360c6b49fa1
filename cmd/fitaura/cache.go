package fitaura

import (
	"database/sql"
	"fmt"

	"github.com/fitaura/fitaura-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	cacheListProvider  string
	cacheListLimit     int
	cachePurgeProvider string
	cachePurgeQuery    string
	cachePurgeAll      bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the nutrition lookup cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached nutrition lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCacheDB(func(sqldb *sql.DB) error {
			items, err := service.ListNutritionCache(sqldb, cacheListProvider, cacheListLimit)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cached lookups.")
				return nil
			}
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %q  fetched %s  expires %s\n",
					item.Provider, item.Query,
					item.FetchedAt.Format("2006-01-02 15:04"),
					item.ExpiresAt.Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge cached nutrition lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCacheDB(func(sqldb *sql.DB) error {
			affected, err := service.PurgeNutritionCache(sqldb, cachePurgeProvider, cachePurgeQuery, cachePurgeAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached lookup(s)\n", affected)
			return nil
		})
	},
}

func init() {
	cacheListCmd.Flags().StringVar(&cacheListProvider, "provider", "", "Filter by provider")
	cacheListCmd.Flags().IntVar(&cacheListLimit, "limit", 100, "Maximum rows to list")
	cachePurgeCmd.Flags().StringVar(&cachePurgeProvider, "provider", "", "Purge rows for one provider")
	cachePurgeCmd.Flags().StringVar(&cachePurgeQuery, "query", "", "Purge rows for one query")
	cachePurgeCmd.Flags().BoolVar(&cachePurgeAll, "all", false, "Purge everything")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
