package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const defaultNutritionTTL = 30 * 24 * time.Hour

type NutritionCacheItem struct {
	Provider  string    `json:"provider"`
	Query     string    `json:"query"`
	FetchedAt time.Time `json:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func lookupCachedFoods(db *sql.DB, provider, query string) ([]byte, bool, error) {
	var raw string
	err := db.QueryRow(`
SELECT response_json FROM nutrition_cache
WHERE provider = ? AND query = ? AND expires_at > ?
`, provider, query, time.Now().UTC().Format(time.RFC3339)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup nutrition cache: %w", err)
	}
	return []byte(raw), true, nil
}

func storeCachedFoods(db *sql.DB, provider, query string, response []byte) error {
	now := time.Now().UTC()
	_, err := db.Exec(`
INSERT INTO nutrition_cache(provider, query, response_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(provider, query) DO UPDATE SET
  response_json=excluded.response_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, provider, query, string(response), now.Format(time.RFC3339), now.Add(defaultNutritionTTL).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store nutrition cache row: %w", err)
	}
	return nil
}

func ListNutritionCache(db *sql.DB, provider string, limit int) ([]NutritionCacheItem, error) {
	provider = strings.TrimSpace(provider)
	if limit <= 0 {
		limit = 100
	}
	base := `SELECT provider, query, fetched_at, expires_at FROM nutrition_cache`
	args := make([]any, 0, 2)
	if provider != "" {
		base += ` WHERE provider = ?`
		args = append(args, provider)
	}
	base += ` ORDER BY fetched_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(base, args...)
	if err != nil {
		return nil, fmt.Errorf("list nutrition cache: %w", err)
	}
	defer rows.Close()
	out := make([]NutritionCacheItem, 0)
	for rows.Next() {
		var item NutritionCacheItem
		var fetched, expires string
		if err := rows.Scan(&item.Provider, &item.Query, &fetched, &expires); err != nil {
			return nil, fmt.Errorf("scan nutrition cache: %w", err)
		}
		item.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
		item.ExpiresAt, _ = time.Parse(time.RFC3339, expires)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nutrition cache: %w", err)
	}
	return out, nil
}

func PurgeNutritionCache(db *sql.DB, provider, query string, purgeAll bool) (int64, error) {
	provider = strings.TrimSpace(provider)
	query = strings.TrimSpace(query)

	var (
		res sql.Result
		err error
	)
	switch {
	case purgeAll:
		res, err = db.Exec(`DELETE FROM nutrition_cache`)
	case provider != "" && query != "":
		res, err = db.Exec(`DELETE FROM nutrition_cache WHERE provider = ? AND query = ?`, provider, query)
	case provider != "":
		res, err = db.Exec(`DELETE FROM nutrition_cache WHERE provider = ?`, provider)
	case query != "":
		res, err = db.Exec(`DELETE FROM nutrition_cache WHERE query = ?`, query)
	default:
		return 0, fmt.Errorf("specify --all, --provider, --query, or provider+query")
	}
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge nutrition cache rows affected: %w", err)
	}
	return affected, nil
}
