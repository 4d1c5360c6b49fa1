package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fitaura/fitaura-cli/internal/model"
)

// Accepted timestamp layouts, both interpreted as UTC. Anything else falls
// back to an RFC 3339 parse after rewriting a trailing "Z" offset.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05Z",
}

// LoadLogs reads a logs file: a JSON object keyed by log id.
func LoadLogs(path string) (map[string]model.LogRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logs file %s: %w", path, err)
	}
	logs := make(map[string]model.LogRecord)
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("decode logs file %s: %w", path, err)
	}
	return logs, nil
}

// LatestLog returns the record with the most recent timestamp. Records
// without a timestamp sort as the Unix epoch. Ties between identical
// timestamps break on the record's map key, ascending, so selection is
// deterministic.
func LatestLog(logs map[string]model.LogRecord) (model.LogRecord, error) {
	if len(logs) == 0 {
		return model.LogRecord{}, fmt.Errorf("no log records to select from")
	}
	type keyed struct {
		key string
		rec model.LogRecord
		ts  time.Time
	}
	records := make([]keyed, 0, len(logs))
	for key, rec := range logs {
		ts := time.Unix(0, 0).UTC()
		if rec.Timestamp != "" {
			parsed, err := ParseTimestamp(rec.Timestamp)
			if err != nil {
				return model.LogRecord{}, err
			}
			ts = parsed
		}
		records = append(records, keyed{key: key, rec: rec, ts: ts})
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].ts.Equal(records[j].ts) {
			return records[i].ts.After(records[j].ts)
		}
		return records[i].key < records[j].key
	})
	return records[0].rec, nil
}

// ParseTimestamp parses an ISO-8601 timestamp with or without fractional
// seconds, always as UTC.
func ParseTimestamp(ts string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(ts, "Z", "+00:00", 1)); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format %q", ts)
}
