package pagesift

import "strings"

// RangeFilter bounds a numeric field value. Nil bounds are open.
type RangeFilter struct {
	Min *float64
	Max *float64
}

// KeywordFilter requires at least one of Keywords to appear somewhere in a
// record's values. Name labels the rule in warnings (e.g. "location").
type KeywordFilter struct {
	Name     string
	Keywords []string
}

// ValidationRules are template-level quality constraints evaluated after
// extraction. Violations produce record warnings, never rejection: the
// caller decides whether to discard low-quality records.
type ValidationRules struct {
	// MinPriorityFields is the minimum number of priority fields that must
	// resolve for the record to be considered useful.
	MinPriorityFields int

	// Keywords are inclusion filters over the whole record.
	Keywords []KeywordFilter

	// Exclude lists keywords that must not appear anywhere in the record.
	Exclude []string

	// Ranges bounds numeric fields by field name. Applies to plain numbers,
	// prices (the amount), and ratings (the score).
	Ranges map[string]RangeFilter
}

// Template bundles the field descriptors and quality metadata for one
// extraction use case. Templates are immutable configuration, constructed
// once and reused across many documents.
type Template struct {
	Name        string
	Description string

	// Category classifies the search scenario (e.g. "person", "product",
	// "company"). Free-form.
	Category string

	// Fields are resolved independently; order matters only for display
	// and deterministic iteration.
	Fields []FieldDescriptor

	// PriorityFields names the fields essential to a useful record.
	PriorityFields []string

	// OptionalFields names supplementary fields. A name may appear in both
	// sets; it then counts toward both completeness denominators.
	OptionalFields []string

	Rules ValidationRules
}

// Validate returns an error if the template contains invalid fields,
// duplicate field names, or priority/optional names that reference no
// declared field.
func (t *Template) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "template name required")
	}
	declared := make(map[string]bool, len(t.Fields))
	for i := range t.Fields {
		f := &t.Fields[i]
		if err := f.Validate(); err != nil {
			return err
		}
		if declared[f.Name] {
			return Errorf(EINVALID, "template %q declares field %q twice", t.Name, f.Name)
		}
		declared[f.Name] = true
	}
	for _, name := range t.PriorityFields {
		if !declared[name] {
			return Errorf(EINVALID, "template %q lists unknown priority field %q", t.Name, name)
		}
	}
	for _, name := range t.OptionalFields {
		if !declared[name] {
			return Errorf(EINVALID, "template %q lists unknown optional field %q", t.Name, name)
		}
	}
	return nil
}

// IsPriority reports whether name is one of the template's priority fields.
func (t *Template) IsPriority(name string) bool {
	for _, p := range t.PriorityFields {
		if p == name {
			return true
		}
	}
	return false
}

// Field returns the descriptor with the given name, or nil.
func (t *Template) Field(name string) *FieldDescriptor {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}
	return nil
}

// ContainsKeyword reports whether keyword appears (case-insensitively) in
// any of the given strings.
func ContainsKeyword(values []string, keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), keyword) {
			return true
		}
	}
	return false
}
