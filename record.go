package pagesift

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is the structured output of extracting one template against one
// document. Fields maps field name to resolved value; a nil value marks a
// required field that was checked but absent. Fields that are neither
// required nor resolved are omitted entirely.
//
// Values are one of: string, float64, Price, Dimensions, Rating, or
// []any of those for multi-valued fields.
type Record struct {
	TemplateName string         `json:"template_name"`
	SourceURL    string         `json:"url,omitempty"`
	ExtractedAt  time.Time      `json:"extraction_timestamp"`
	Fields       map[string]any `json:"fields"`

	// DataCompleteness is the fraction of all template fields populated.
	DataCompleteness float64 `json:"data_completeness"`

	// PriorityCompleteness is the fraction of priority fields populated,
	// 1.0 when the template declares none.
	PriorityCompleteness float64 `json:"priority_completeness"`

	// Warnings reports template-level validation rule violations.
	// A record with warnings is still a record.
	Warnings []string `json:"warnings,omitempty"`
}

// FieldNames returns the record's field names sorted for deterministic
// iteration (export writers, hashing).
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValueStrings returns the string forms of every populated field value,
// multi-valued fields flattened.
func (r *Record) ValueStrings() []string {
	var out []string
	for _, name := range r.FieldNames() {
		v := r.Fields[name]
		if v == nil {
			continue
		}
		if list, ok := v.([]any); ok {
			for _, item := range list {
				out = append(out, FormatValue(item))
			}
			continue
		}
		out = append(out, FormatValue(v))
	}
	return out
}

// FormatValue renders a resolved field value as a display string. Typed
// values use their Formatted form; multi-valued fields join with "; ".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case Price:
		return val.Formatted
	case Dimensions:
		return val.Formatted
	case Rating:
		return val.Formatted
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%v", v)
}

// NumericValue extracts a comparable number from a resolved value for
// range-rule evaluation: plain numbers directly, prices by amount, ratings
// by score, strings by parsing. The second return reports success.
func NumericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case Price:
		return val.Amount, true
	case Rating:
		return val.Score, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	case []any:
		if len(val) > 0 {
			return NumericValue(val[0])
		}
	}
	return 0, false
}
