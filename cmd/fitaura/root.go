package fitaura

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/fitaura/fitaura-cli/internal/app"
	"github.com/fitaura/fitaura-cli/internal/db"
	"github.com/spf13/cobra"
)

var cachePath string

var rootCmd = &cobra.Command{
	Use:   "fitaura",
	Short: "fitaura enriches fitness-log submissions with calories and macros",
	Long:  "fitaura turns a raw fitness-log submission (voice or text) into a structured record annotated with computed exercise calories and food macro-nutrients.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Path to the nutrition lookup cache database")
}

func resolveCachePath() (string, error) {
	if strings.TrimSpace(cachePath) != "" {
		return cachePath, nil
	}
	return app.DefaultCachePath()
}

func withCacheDB(run func(*sql.DB) error) error {
	path, err := resolveCachePath()
	if err != nil {
		return err
	}
	if err := app.EnsureDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}
