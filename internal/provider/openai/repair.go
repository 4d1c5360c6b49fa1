package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnparsable marks model output that stays invalid after every repair
// rule has been applied.
var ErrUnparsable = errors.New("model output is not valid JSON")

var trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)

// decodeModelJSON parses model output into v, repairing the common ways
// models break strict JSON: code fences, a leading "json" fence label,
// raw newlines, and trailing commas. Anything still unparsable reports
// ErrUnparsable rather than a bare syntax error.
func decodeModelJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "`")
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "json"))
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	cleaned = trailingCommaRE.ReplaceAllString(cleaned, "$1")
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return nil
}
