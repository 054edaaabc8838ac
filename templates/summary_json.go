package templates

import (
	"encoding/json"
	"io"
	"strings"

	"flight-history-service/internal/domain/entity"
)

// JSONSummaryRenderer writes the consolidated result as a single JSON document
type JSONSummaryRenderer struct {
	indent bool
}

// NewJSONSummaryRenderer creates a JSON renderer. Indented output is meant for humans.
func NewJSONSummaryRenderer(indent bool) *JSONSummaryRenderer {
	return &JSONSummaryRenderer{indent: indent}
}

// CanHandle determines if this renderer serves the given output format
func (r *JSONSummaryRenderer) CanHandle(format string) bool {
	format = strings.ToLower(format)
	if r.indent {
		return format == "json-pretty"
	}
	return format == "" || format == "json"
}

// Render encodes result. A nil or empty result is written as {}.
func (r *JSONSummaryRenderer) Render(w io.Writer, result entity.ConsolidatedResult) error {
	if result == nil {
		result = entity.ConsolidatedResult{}
	}
	enc := json.NewEncoder(w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
