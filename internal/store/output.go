package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fitaura/fitaura-cli/internal/model"
)

// OutputLog maps record ids to their enriched payloads. Existing entries
// are kept opaque; each run only rewrites the key it processed.
type OutputLog map[string]json.RawMessage

// LoadOutputLog reads the output file if present. A missing, unreadable,
// or corrupt file is non-fatal: the store is reconstructible, so we warn
// and start from an empty one.
func LoadOutputLog(path string) OutputLog {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not read existing output log", "path", path, "error", err)
		}
		return OutputLog{}
	}
	out := OutputLog{}
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("could not parse existing output log", "path", path, "error", err)
		return OutputLog{}
	}
	return out
}

// Merge sets the enriched payload for a record id, overwriting any prior
// entry. Last write wins.
func (o OutputLog) Merge(recordID string, payload model.Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode enriched payload for record %q: %w", recordID, err)
	}
	o[recordID] = raw
	return nil
}

// SaveOutputLog rewrites the full store as pretty-printed JSON.
func SaveOutputLog(path string, o OutputLog) error {
	raw, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output log: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write output log %s: %w", path, err)
	}
	return nil
}
